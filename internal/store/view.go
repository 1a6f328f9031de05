package store

import (
	"bytes"
	"encoding/json"
	"sort"

	"status-backend/internal/model"
)

// ViewPolicy carries the configured presentation flags for the device view.
type ViewPolicy struct {
	UsingFirst bool
	Sorted     bool
	NotUsing   string // status text shown for idle devices, empty disables
}

// DeviceView maps device ids to flat attribute mappings while keeping the
// order the assembly policy produced.
type DeviceView struct {
	ids   []string
	attrs map[string]map[string]any
}

func newDeviceView(n int) *DeviceView {
	return &DeviceView{attrs: make(map[string]map[string]any, n)}
}

func (v *DeviceView) add(id string, attrs map[string]any) {
	if _, ok := v.attrs[id]; !ok {
		v.ids = append(v.ids, id)
	}
	v.attrs[id] = attrs
}

// Len reports the number of devices in the view.
func (v *DeviceView) Len() int { return len(v.ids) }

// IDs returns the device ids in view order.
func (v *DeviceView) IDs() []string { return append([]string(nil), v.ids...) }

// Attrs returns the attribute mapping for one device id.
func (v *DeviceView) Attrs(id string) (map[string]any, bool) {
	a, ok := v.attrs[id]
	return a, ok
}

// MarshalJSON renders the view as a JSON object in view order. Go maps do
// not keep insertion order, so the object is written by hand.
func (v *DeviceView) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range v.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(v.attrs[id])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// assembleView applies the view policy to the device list. With UsingFirst
// the list is split into active, idle and unknown groups in that order;
// Sorted orders each group (or the whole list) by id; NotUsing replaces the
// status text of every idle device.
func assembleView(devices []model.Device, p ViewPolicy) *DeviceView {
	if p.UsingFirst {
		var active, idle, unknown []model.Device
		for _, d := range devices {
			switch {
			case d.Using == nil:
				unknown = append(unknown, d)
			case *d.Using:
				active = append(active, d)
			default:
				idle = append(idle, d)
			}
		}
		if p.Sorted {
			sortByID(active)
			sortByID(idle)
			sortByID(unknown)
		}
		merged := make([]model.Device, 0, len(devices))
		merged = append(merged, active...)
		merged = append(merged, idle...)
		merged = append(merged, unknown...)
		devices = merged
	} else if p.Sorted {
		devices = append([]model.Device(nil), devices...)
		sortByID(devices)
	}

	view := newDeviceView(len(devices))
	for _, d := range devices {
		status := d.Status
		if p.NotUsing != "" && d.Using != nil && !*d.Using {
			status = p.NotUsing
		}
		view.add(d.ID, deviceAttrs(d, status))
	}
	return view
}

func sortByID(ds []model.Device) {
	sort.Slice(ds, func(i, j int) bool { return ds[i].ID < ds[j].ID })
}

// deviceAttrs flattens a device row into JSON-ready primitives.
func deviceAttrs(d model.Device, status string) map[string]any {
	fields := map[string]any(d.Fields)
	if fields == nil {
		fields = map[string]any{}
	}
	return map[string]any{
		"id":           d.ID,
		"show_name":    d.ShowName,
		"using":        usingValue(d),
		"status":       status,
		"fields":       fields,
		"last_updated": d.UpdatedAt.Unix(),
	}
}

func usingValue(d model.Device) any {
	if d.Using == nil {
		return nil
	}
	return *d.Using
}
