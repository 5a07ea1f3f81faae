package enum

type UserRole string

const (
	Doctor  UserRole = "doctor"
	Patient UserRole = "patient"
)
