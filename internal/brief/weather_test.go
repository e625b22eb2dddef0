package brief

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smhjw/daily-telegram-brief/internal/config"
	"github.com/smhjw/daily-telegram-brief/pkg/openmeteo"
)

type fakeOpenMeteo struct {
	place       *openmeteo.Place
	forecast    *openmeteo.Forecast
	searchErr   error
	forecastErr error
	searched    bool
}

func (f *fakeOpenMeteo) Search(_ context.Context, _ string) (*openmeteo.Place, error) {
	f.searched = true
	return f.place, f.searchErr
}

func (f *fakeOpenMeteo) Forecast(_ context.Context, _, _ float64, _ string) (*openmeteo.Forecast, error) {
	return f.forecast, f.forecastErr
}

func iptr(v int) *int { return &v }

func sampleForecast() *openmeteo.Forecast {
	return &openmeteo.Forecast{
		Current: openmeteo.Current{
			Temperature: fptr(21.3),
			Apparent:    fptr(19.8),
			WeatherCode: iptr(2),
			WindSpeed:   fptr(12.5),
		},
		Daily: openmeteo.Daily{
			TemperatureMax: []float64{25.1},
			TemperatureMin: []float64{17.4},
		},
	}
}

func TestWeatherBuilder_CityLookup(t *testing.T) {
	t.Parallel()

	client := &fakeOpenMeteo{
		place:    &openmeteo.Place{Name: "上海市", Latitude: 31.22, Longitude: 121.46},
		forecast: sampleForecast(),
	}
	b := NewWeatherBuilder(client, config.WeatherConfig{City: "Shanghai"}, "Asia/Shanghai")

	items := b.Build(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, "上海市: 局部多云，当前 21.3°C，体感 19.8°C，最高/最低 25.1/17.4°C，风速 12.5 km/h", items[0])
	assert.True(t, client.searched)
}

func TestWeatherBuilder_CoordinatesSkipGeocoding(t *testing.T) {
	t.Parallel()

	client := &fakeOpenMeteo{forecast: sampleForecast()}
	b := NewWeatherBuilder(client, config.WeatherConfig{
		City:      "Beijing",
		Latitude:  39.9,
		Longitude: 116.4,
	}, "Asia/Shanghai")

	items := b.Build(context.Background())
	require.Len(t, items, 1)
	assert.False(t, client.searched)
	assert.Contains(t, items[0], "Beijing: ")
}

func TestWeatherBuilder_MissingFieldsRenderNA(t *testing.T) {
	t.Parallel()

	client := &fakeOpenMeteo{
		place:    &openmeteo.Place{Name: "上海市"},
		forecast: &openmeteo.Forecast{},
	}
	b := NewWeatherBuilder(client, config.WeatherConfig{City: "Shanghai"}, "Asia/Shanghai")

	items := b.Build(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, "上海市: 未知天气，当前 N/A°C，体感 N/A°C，最高/最低 N/A/N/A°C，风速 N/A km/h", items[0])
}

func TestWeatherBuilder_SearchFailure(t *testing.T) {
	t.Parallel()

	client := &fakeOpenMeteo{searchErr: eris.New("城市未找到: Atlantis")}
	b := NewWeatherBuilder(client, config.WeatherConfig{City: "Atlantis"}, "Asia/Shanghai")

	items := b.Build(context.Background())
	require.Len(t, items, 1)
	assert.Contains(t, items[0], "天气获取失败")
	assert.Contains(t, items[0], "城市未找到")
}

func TestDescribeWeatherCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "晴", describeWeatherCode(iptr(0)))
	assert.Equal(t, "雷雨伴大冰雹", describeWeatherCode(iptr(99)))
	assert.Equal(t, "天气码 42", describeWeatherCode(iptr(42)))
	assert.Equal(t, "未知天气", describeWeatherCode(nil))
}
