package services

import "miaoyou/internal/models/response_models"

// Reference coordinates for major cities, used as the last-resort anchor
// when no provider can resolve a place.
var cityCoordinates = map[string]response_models.Location{
	"北京":   {Longitude: 116.4074, Latitude: 39.9042},
	"上海":   {Longitude: 121.4737, Latitude: 31.2304},
	"广州":   {Longitude: 113.2644, Latitude: 23.1291},
	"深圳":   {Longitude: 114.0579, Latitude: 22.5431},
	"成都":   {Longitude: 104.0668, Latitude: 30.5728},
	"杭州":   {Longitude: 120.1551, Latitude: 30.2741},
	"南京":   {Longitude: 118.7969, Latitude: 32.0603},
	"武汉":   {Longitude: 114.3054, Latitude: 30.5931},
	"西安":   {Longitude: 108.9398, Latitude: 34.3416},
	"重庆":   {Longitude: 106.5516, Latitude: 29.5630},
	"天津":   {Longitude: 117.2010, Latitude: 39.0842},
	"苏州":   {Longitude: 120.5853, Latitude: 31.2990},
	"厦门":   {Longitude: 118.0894, Latitude: 24.4798},
	"长沙":   {Longitude: 112.9388, Latitude: 28.2282},
	"青岛":   {Longitude: 120.3826, Latitude: 36.0671},
	"大连":   {Longitude: 121.6186, Latitude: 38.9146},
	"宁波":   {Longitude: 121.5497, Latitude: 29.8683},
	"无锡":   {Longitude: 120.3119, Latitude: 31.4912},
	"福州":   {Longitude: 119.2965, Latitude: 26.0745},
	"济南":   {Longitude: 117.1205, Latitude: 36.6512},
	"哈尔滨":  {Longitude: 126.5420, Latitude: 45.8088},
	"长春":   {Longitude: 125.3245, Latitude: 43.8171},
	"沈阳":   {Longitude: 123.4315, Latitude: 41.8057},
	"石家庄":  {Longitude: 114.5149, Latitude: 38.0428},
	"郑州":   {Longitude: 113.6254, Latitude: 34.7466},
	"昆明":   {Longitude: 102.8329, Latitude: 24.8801},
	"贵阳":   {Longitude: 106.6302, Latitude: 26.6470},
	"南宁":   {Longitude: 108.3200, Latitude: 22.8240},
	"海口":   {Longitude: 110.3293, Latitude: 20.0440},
	"太原":   {Longitude: 112.5489, Latitude: 37.8706},
	"合肥":   {Longitude: 117.2272, Latitude: 31.8206},
	"南昌":   {Longitude: 115.8581, Latitude: 28.6832},
	"兰州":   {Longitude: 103.8343, Latitude: 36.0611},
	"西宁":   {Longitude: 101.7803, Latitude: 36.6173},
	"银川":   {Longitude: 106.2309, Latitude: 38.4872},
	"乌鲁木齐": {Longitude: 87.6168, Latitude: 43.8256},
	"拉萨":   {Longitude: 91.1119, Latitude: 29.9734},
	"呼和浩特": {Longitude: 111.7518, Latitude: 40.8429},
}

const defaultCityName = "北京"

// GetCityCoordinates resolves a city to its reference point. Unknown cities
// fall back to the 北京 entry; the second return value tells the caller to
// log a warning rather than fail.
func GetCityCoordinates(city string) (response_models.Location, bool) {
	if loc, ok := cityCoordinates[city]; ok {
		return loc, true
	}
	return cityCoordinates[defaultCityName], false
}
