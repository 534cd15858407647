package services

import (
	"fmt"

	"miaoyou/internal/models/request_models"
	"miaoyou/internal/models/response_models"
	"miaoyou/pkg/utils"
)

// sampleTripPlan is the built-in Beijing itinerary served when generation
// cannot produce a usable plan. Coordinates are real so map rendering stays
// meaningful even in degraded mode.
func sampleTripPlan() *response_models.TripPlan {
	return &response_models.TripPlan{
		City:      defaultCityName,
		StartDate: "2024-05-01",
		EndDate:   "2024-05-05",
		Days: []response_models.DayPlan{
			{
				Date:     "2024-05-01",
				DayIndex: 0,
				Attractions: []response_models.Attraction{
					{
						Name:          "天安门广场",
						Address:       "北京市东城区东长安街",
						Location:      response_models.Location{Longitude: 116.397455, Latitude: 39.909187},
						VisitDuration: 90,
						Description:   "世界上最大的城市广场之一，感受首都的庄严与辽阔",
						Rating:        4.8,
						Category:      "景点",
					},
					{
						Name:          "故宫博物院",
						Address:       "北京市东城区景山前街4号",
						Location:      response_models.Location{Longitude: 116.397128, Latitude: 39.916527},
						VisitDuration: 240,
						Description:   "明清两代的皇家宫殿，馆藏文物逾百万件",
						Rating:        4.9,
						Category:      "景点",
					},
					{
						Name:          "景山公园",
						Address:       "北京市西城区景山西街44号",
						Location:      response_models.Location{Longitude: 116.395766, Latitude: 39.928353},
						VisitDuration: 60,
						Description:   "登万春亭俯瞰紫禁城全景的最佳位置",
						Rating:        4.7,
						Category:      "景点",
					},
				},
				Meals: []response_models.Meal{
					{Type: response_models.MealTypeBreakfast, Name: "护国寺小吃", Description: "豆汁、焦圈、艾窝窝等地道北京早点"},
					{Type: response_models.MealTypeLunch, Name: "四季民福烤鸭店", Description: "故宫店可以边吃烤鸭边看角楼"},
					{Type: response_models.MealTypeDinner, Name: "东来顺", Description: "百年老字号铜锅涮肉"},
				},
				Transportation: "地铁1号线天安门东站",
				Accommodation:  "王府井附近酒店",
				Description:    "第1天行程安排",
			},
			{
				Date:     "2024-05-02",
				DayIndex: 1,
				Attractions: []response_models.Attraction{
					{
						Name:          "八达岭长城",
						Address:       "北京市延庆区G6京藏高速58号出口",
						Location:      response_models.Location{Longitude: 116.024067, Latitude: 40.354188},
						VisitDuration: 300,
						Description:   "长城最著名的一段，不到长城非好汉",
						Rating:        4.8,
						Category:      "景点",
					},
					{
						Name:          "奥林匹克公园",
						Address:       "北京市朝阳区北辰东路15号",
						Location:      response_models.Location{Longitude: 116.396794, Latitude: 40.00885},
						VisitDuration: 120,
						Description:   "鸟巢与水立方夜景尤其值得一看",
						Rating:        4.6,
						Category:      "景点",
					},
				},
				Meals: []response_models.Meal{
					{Type: response_models.MealTypeBreakfast, Name: "酒店早餐", Description: "建议早些出发前往长城"},
					{Type: response_models.MealTypeLunch, Name: "长城脚下农家菜", Description: "虹鳟鱼和贴饼子是当地特色"},
					{Type: response_models.MealTypeDinner, Name: "新奥购物中心美食层", Description: "奥林匹克公园旁用餐方便"},
				},
				Transportation: "市郊铁路S2线或旅游专线",
				Accommodation:  "王府井附近酒店",
				Description:    "第2天行程安排",
			},
			{
				Date:     "2024-05-03",
				DayIndex: 2,
				Attractions: []response_models.Attraction{
					{
						Name:          "颐和园",
						Address:       "北京市海淀区新建宫门路19号",
						Location:      response_models.Location{Longitude: 116.275147, Latitude: 39.999886},
						VisitDuration: 180,
						Description:   "保存最完整的皇家园林，昆明湖泛舟",
						Rating:        4.8,
						Category:      "景点",
					},
					{
						Name:          "圆明园",
						Address:       "北京市海淀区清华西路28号",
						Location:      response_models.Location{Longitude: 116.302146, Latitude: 40.007629},
						VisitDuration: 120,
						Description:   "万园之园遗址，西洋楼残迹发人深省",
						Rating:        4.6,
						Category:      "景点",
					},
					{
						Name:          "南锣鼓巷",
						Address:       "北京市东城区南锣鼓巷",
						Location:      response_models.Location{Longitude: 116.403414, Latitude: 39.937149},
						VisitDuration: 90,
						Description:   "保存完好的元代胡同街区，小吃与文创聚集",
						Rating:        4.5,
						Category:      "景点",
					},
					{
						Name:          "什刹海",
						Address:       "北京市西城区羊房胡同",
						Location:      response_models.Location{Longitude: 116.38437, Latitude: 39.940378},
						VisitDuration: 90,
						Description:   "环湖酒吧街与胡同游，傍晚景色最佳",
						Rating:        4.5,
						Category:      "景点",
					},
				},
				Meals: []response_models.Meal{
					{Type: response_models.MealTypeBreakfast, Name: "庆丰包子铺", Description: "猪肉大葱包配炒肝"},
					{Type: response_models.MealTypeLunch, Name: "颐和园听鹂馆", Description: "宫廷菜风味餐厅"},
					{Type: response_models.MealTypeDinner, Name: "南锣鼓巷小吃", Description: "边逛边吃，文宇奶酪值得一试"},
				},
				Transportation: "地铁4号线",
				Accommodation:  "王府井附近酒店",
				Description:    "第3天行程安排",
			},
			{
				Date:     "2024-05-04",
				DayIndex: 3,
				Attractions: []response_models.Attraction{
					{
						Name:          "天坛公园",
						Address:       "北京市东城区天坛路甲1号",
						Location:      response_models.Location{Longitude: 116.410829, Latitude: 39.881913},
						VisitDuration: 150,
						Description:   "明清帝王祭天之所，祈年殿是北京的标志",
						Rating:        4.8,
						Category:      "景点",
					},
					{
						Name:          "前门大街",
						Address:       "北京市东城区前门大街",
						Location:      response_models.Location{Longitude: 116.397781, Latitude: 39.899757},
						VisitDuration: 120,
						Description:   "百年商业街，老字号云集",
						Rating:        4.5,
						Category:      "景点",
					},
				},
				Meals: []response_models.Meal{
					{Type: response_models.MealTypeBreakfast, Name: "老磁器口豆汁店", Description: "天坛北门旁的地道豆汁"},
					{Type: response_models.MealTypeLunch, Name: "前门都一处", Description: "烧麦老字号"},
					{Type: response_models.MealTypeDinner, Name: "大栅栏涮肉", Description: "胡同里的铜锅涮肉"},
				},
				Transportation: "地铁5号线天坛东门站",
				Accommodation:  "王府井附近酒店",
				Description:    "第4天行程安排",
			},
			{
				Date:     "2024-05-05",
				DayIndex: 4,
				Attractions: []response_models.Attraction{
					{
						Name:          "雍和宫",
						Address:       "北京市东城区雍和宫大街12号",
						Location:      response_models.Location{Longitude: 116.417296, Latitude: 39.947239},
						VisitDuration: 90,
						Description:   "北京规模最大的藏传佛教寺院",
						Rating:        4.7,
						Category:      "景点",
					},
					{
						Name:          "798艺术区",
						Address:       "北京市朝阳区酒仙桥路4号",
						Location:      response_models.Location{Longitude: 116.495843, Latitude: 39.984073},
						VisitDuration: 180,
						Description:   "工业厂房改造的当代艺术街区",
						Rating:        4.6,
						Category:      "景点",
					},
				},
				Meals: []response_models.Meal{
					{Type: response_models.MealTypeBreakfast, Name: "雍和宫旁粥铺", Description: "清淡早餐后参观寺院"},
					{Type: response_models.MealTypeLunch, Name: "798园区餐厅", Description: "艺术区内创意餐饮选择丰富"},
					{Type: response_models.MealTypeDinner, Name: "簋街", Description: "告别晚餐，麻辣小龙虾一条街"},
				},
				Transportation: "地铁2号线雍和宫站",
				Accommodation:  "王府井附近酒店",
				Description:    "第5天行程安排",
			},
		},
		WeatherInfo:        []response_models.WeatherInfo{},
		OverallSuggestions: defaultOverallSuggestions,
	}
}

// reshapeSamplePlan fits the static itinerary to the requested trip: days
// are cycled to cover the requested length and restamped with the caller's
// dates and travel preferences.
func reshapeSamplePlan(form request_models.TripFormData) *response_models.TripPlan {
	base := sampleTripPlan()

	days := make([]response_models.DayPlan, 0, form.TravelDays)
	for i := 0; i < form.TravelDays; i++ {
		day := base.Days[i%len(base.Days)]
		day.DayIndex = i
		day.Date = utils.AddDaysISO(form.StartDate, i)
		day.Description = fmt.Sprintf("第%d天行程安排", i+1)
		if form.Transportation != "" {
			day.Transportation = form.Transportation
		}
		if form.Accommodation != "" {
			day.Accommodation = form.Accommodation
		}
		days = append(days, day)
	}

	endDate := form.EndDate
	if endDate == "" {
		endDate = utils.AddDaysISO(form.StartDate, form.TravelDays-1)
	}

	return &response_models.TripPlan{
		City:               form.City,
		StartDate:          form.StartDate,
		EndDate:            endDate,
		Days:               days,
		WeatherInfo:        []response_models.WeatherInfo{},
		OverallSuggestions: base.OverallSuggestions,
	}
}
