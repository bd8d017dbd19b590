package models

import "time"

type User struct {
	ID           int64     `json:"id" bson:"id"`
	FullName     string    `json:"full_name" bson:"full_name"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedDate  time.Time `json:"created_date" bson:"created_date"`
}

// LoginEvent keeps the latest successful login per (username, email).
type LoginEvent struct {
	Username  string    `json:"username" bson:"username"`
	Email     string    `json:"email" bson:"email"`
	LoginDate time.Time `json:"login_date" bson:"login_date"`
}
