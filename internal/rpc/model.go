package rpc

import "time"

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     *string   `json:"image,omitempty"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

type Posts []Post

// Feed is a window of the post list.
type Feed struct {
	Posts       Posts `json:"posts"`
	Visible     int   `json:"visible"`
	Total       int   `json:"total"`
	HasMore     bool  `json:"hasMore"`
	NextVisible int   `json:"nextVisible"`
}
