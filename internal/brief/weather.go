package brief

import (
	"context"
	"fmt"

	"github.com/smhjw/daily-telegram-brief/internal/config"
	"github.com/smhjw/daily-telegram-brief/pkg/openmeteo"
)

// weatherCodeText maps WMO weather codes to Chinese descriptions.
var weatherCodeText = map[int]string{
	0:  "晴",
	1:  "大部晴",
	2:  "局部多云",
	3:  "阴",
	45: "雾",
	48: "冻雾",
	51: "小毛毛雨",
	53: "毛毛雨",
	55: "强毛毛雨",
	56: "冻毛毛雨",
	57: "强冻毛毛雨",
	61: "小雨",
	63: "中雨",
	65: "大雨",
	66: "冻雨",
	67: "强冻雨",
	71: "小雪",
	73: "中雪",
	75: "大雪",
	77: "冰粒",
	80: "阵雨",
	81: "较强阵雨",
	82: "强阵雨",
	85: "阵雪",
	86: "强阵雪",
	95: "雷雨",
	96: "雷雨伴小冰雹",
	99: "雷雨伴大冰雹",
}

func describeWeatherCode(code *int) string {
	if code == nil {
		return "未知天气"
	}
	if text, ok := weatherCodeText[*code]; ok {
		return text
	}
	return fmt.Sprintf("天气码 %d", *code)
}

// WeatherBuilder builds the weather section for a configured city or
// explicit coordinates.
type WeatherBuilder struct {
	client   openmeteo.Client
	cfg      config.WeatherConfig
	timezone string
}

// NewWeatherBuilder creates a WeatherBuilder.
func NewWeatherBuilder(client openmeteo.Client, cfg config.WeatherConfig, timezone string) *WeatherBuilder {
	return &WeatherBuilder{client: client, cfg: cfg, timezone: timezone}
}

// Topic implements Builder.
func (b *WeatherBuilder) Topic() Topic { return TopicWeather }

// Build implements Builder.
func (b *WeatherBuilder) Build(ctx context.Context) []string {
	line, err := b.line(ctx)
	if err != nil {
		return []string{"天气获取失败: " + err.Error()}
	}
	return []string{line}
}

func (b *WeatherBuilder) line(ctx context.Context) (string, error) {
	name := b.cfg.City
	lat, lon := b.cfg.Latitude, b.cfg.Longitude

	if !b.cfg.HasCoordinates() {
		place, err := b.client.Search(ctx, b.cfg.City)
		if err != nil {
			return "", err
		}
		name = place.Name
		lat, lon = place.Latitude, place.Longitude
	}

	fc, err := b.client.Forecast(ctx, lat, lon, b.timezone)
	if err != nil {
		return "", err
	}

	var maxTemp, minTemp *float64
	if len(fc.Daily.TemperatureMax) > 0 {
		maxTemp = &fc.Daily.TemperatureMax[0]
	}
	if len(fc.Daily.TemperatureMin) > 0 {
		minTemp = &fc.Daily.TemperatureMin[0]
	}

	return fmt.Sprintf("%s: %s，当前 %s°C，体感 %s°C，最高/最低 %s/%s°C，风速 %s km/h",
		name,
		describeWeatherCode(fc.Current.WeatherCode),
		tenth(fc.Current.Temperature),
		tenth(fc.Current.Apparent),
		tenth(maxTemp),
		tenth(minTemp),
		tenth(fc.Current.WindSpeed),
	), nil
}

func tenth(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *v)
}
