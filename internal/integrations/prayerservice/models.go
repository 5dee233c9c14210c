package prayerservice

// Timings именованные времена молитв на одну дату в формате HH:MM
// Пустая строка означает, что сервис не вернул это время
type Timings struct {
	Fajr    string
	Dhuhr   string
	Asr     string
	Maghrib string
	Isha    string
}

// timingsResponse модель ответа сервиса расписаний (совместим с Aladhan API)
type timingsResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   struct {
		Timings struct {
			Fajr    string `json:"Fajr"`
			Dhuhr   string `json:"Dhuhr"`
			Asr     string `json:"Asr"`
			Maghrib string `json:"Maghrib"`
			Isha    string `json:"Isha"`
		} `json:"timings"`
	} `json:"data"`
}
