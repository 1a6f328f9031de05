package mw

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"status-backend/internal/model"
	"status-backend/internal/store"
)

func setupMetricsRouter(t *testing.T) (*gin.Engine, store.Store) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.Metric{}, &model.MetricsMeta{}))

	st := store.NewGormStore(db, store.Options{AllowList: []string{"/counted"}})

	r := gin.Default()
	r.Use(Metrics(st))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) }
	r.GET("/counted", ok)
	r.GET("/free", ok)
	return r, st
}

func TestMetricsMiddlewareCounts(t *testing.T) {
	router, st := setupMetricsRouter(t)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/counted", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/free", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	snap, err := st.MetricsSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), snap.Daily["/counted"])
	assert.NotContains(t, snap.Total, "/free", "paths outside the allow list stay uncounted")
}

func TestMetricsMiddlewareStorageFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	st := store.NewGormStore(gormDB, store.Options{AllowList: []string{"/counted"}})

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "metrics"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	r := gin.Default()
	r.Use(Metrics(st))
	r.GET("/counted", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/counted", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"database error"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
