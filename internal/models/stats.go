package models

import "strings"

// DailyCount is the per-day aggregate: question count and distinct users.
type DailyCount struct {
	Date  string `json:"date"`
	Chats int    `json:"chats"`
	Users int    `json:"users"`
}

// HourlyCount is the per-hour question count. Hour is zero-padded "00".."23".
type HourlyCount struct {
	Hour  string `json:"hour"`
	Chats int    `json:"chats"`
}

// WeekdayCount is the per-ISO-weekday aggregate for one calendar month.
type WeekdayCount struct {
	Day   string `json:"day"`
	Chats int    `json:"chats"`
	Users int    `json:"users"`
}

// UserRank is one row of the per-user chat ranking.
type UserRank struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Chats    int    `json:"chats"`
}

// ClickRank is one row of the per-user click ranking.
type ClickRank struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Clicks   int    `json:"clicks"`
	Chats    int    `json:"chats"`
}

// ClickRatioSide counts one half of the clicked / not-clicked split.
type ClickRatioSide struct {
	Users int `json:"users"`
	Chats int `json:"chats"`
}

// ClickRatio is the clicked vs not-clicked breakdown for a window.
type ClickRatio struct {
	Clicked    ClickRatioSide `json:"clicked"`
	NotClicked ClickRatioSide `json:"notClicked"`
}

// RatioPart pairs an absolute count with its percentage of the day total.
type RatioPart struct {
	Count int     `json:"count"`
	Ratio float64 `json:"ratio"`
}

// PredictionStats summarises the stock classifier's ensemble results for
// one day.
type PredictionStats struct {
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Accuracy  float64 `json:"accuracy"`
}

// DailyReport is the home-dashboard summary for a single day, with
// percentage diffs against the previous day.
type DailyReport struct {
	ChatCount     int             `json:"chatCount"`
	ChatCountDiff float64         `json:"chatCountDiff"`
	UserCount     int             `json:"userCount"`
	UserCountDiff float64         `json:"userCountDiff"`
	ClickRatio    DailyClickRatio `json:"clickRatio"`
	Predictions   PredictionStats `json:"predictionStats"`
}

// DailyClickRatio is the click split of a single day's chats.
type DailyClickRatio struct {
	Click    RatioPart `json:"click"`
	NonClick RatioPart `json:"nonClick"`
}

// UserName derives the display name from a user id, trimming the domain
// from email-style ids.
func UserName(userID string) string {
	name, _, _ := strings.Cut(userID, "@")
	return name
}
