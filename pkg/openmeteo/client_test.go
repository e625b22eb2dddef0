package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Shanghai", q.Get("name"))
		assert.Equal(t, "1", q.Get("count"))
		assert.Equal(t, "zh", q.Get("language"))
		_, _ = w.Write([]byte(`{"results":[{"name":"上海市","latitude":31.22222,"longitude":121.45806}]}`))
	}))
	defer srv.Close()

	c := NewClient(WithGeocodingBaseURL(srv.URL))

	place, err := c.Search(context.Background(), "Shanghai")
	require.NoError(t, err)
	assert.Equal(t, "上海市", place.Name)
	assert.InDelta(t, 31.22222, place.Latitude, 1e-9)
	assert.InDelta(t, 121.45806, place.Longitude, 1e-9)
}

func TestSearch_EmptyNameFallsBackToQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"latitude":31.2,"longitude":121.5}]}`))
	}))
	defer srv.Close()

	c := NewClient(WithGeocodingBaseURL(srv.URL))

	place, err := c.Search(context.Background(), "Shanghai")
	require.NoError(t, err)
	assert.Equal(t, "Shanghai", place.Name)
}

func TestSearch_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := NewClient(WithGeocodingBaseURL(srv.URL))

	_, err := c.Search(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "城市未找到: Atlantis")
}

func TestForecast(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "31.2222", q.Get("latitude"))
		assert.Equal(t, "121.4581", q.Get("longitude"))
		assert.Equal(t, "temperature_2m,apparent_temperature,weather_code,wind_speed_10m", q.Get("current"))
		assert.Equal(t, "temperature_2m_max,temperature_2m_min", q.Get("daily"))
		assert.Equal(t, "1", q.Get("forecast_days"))
		assert.Equal(t, "Asia/Shanghai", q.Get("timezone"))
		_, _ = w.Write([]byte(`{
			"current":{"temperature_2m":21.3,"apparent_temperature":19.8,"weather_code":2,"wind_speed_10m":12.5},
			"daily":{"temperature_2m_max":[25.1],"temperature_2m_min":[17.4]}
		}`))
	}))
	defer srv.Close()

	c := NewClient(WithForecastBaseURL(srv.URL))

	fc, err := c.Forecast(context.Background(), 31.2222, 121.4581, "Asia/Shanghai")
	require.NoError(t, err)
	require.NotNil(t, fc.Current.Temperature)
	assert.Equal(t, 21.3, *fc.Current.Temperature)
	require.NotNil(t, fc.Current.WeatherCode)
	assert.Equal(t, 2, *fc.Current.WeatherCode)
	assert.Equal(t, []float64{25.1}, fc.Daily.TemperatureMax)
	assert.Equal(t, []float64{17.4}, fc.Daily.TemperatureMin)
}

func TestForecast_AbsentCurrentFieldsStayNil(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"current":{},"daily":{}}`))
	}))
	defer srv.Close()

	c := NewClient(WithForecastBaseURL(srv.URL))

	fc, err := c.Forecast(context.Background(), 31.2, 121.5, "UTC")
	require.NoError(t, err)
	assert.Nil(t, fc.Current.Temperature)
	assert.Nil(t, fc.Current.WeatherCode)
	assert.Empty(t, fc.Daily.TemperatureMax)
}
