package domain

import "time"

type Passenger struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	NationalID          string    `json:"national_id"`
	Email               string    `json:"email"`
	PhoneNumber         string    `json:"phone_number"`
	Nationality         string    `json:"nationality"`
	VIP                 bool      `json:"vip"`
	Address             string    `json:"address"`
	DateOfBirth         time.Time `json:"date_of_birth"`
	PassportNumber      string    `json:"passport_number"`
	FrequentFlyerNumber string    `json:"frequent_flyer_number"`
	CreatedAt           time.Time `json:"created_at"`
}
