package domain

// Booking flow constants
const (
	MinPhoneLength = 10 // минимальная длина номера телефона на шаге Gate
)

// Review constants
const (
	MinRating        = 0 // 0 = оценка не выставлена
	MaxRating        = 5
	MaxCommentLength = 1000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Navigation сигнал для хоста (роутера или модального окна)
type Navigation string

const (
	NavigationNone  Navigation = ""
	NavigationHome  Navigation = "home"
	NavigationClose Navigation = "close"
	NavigationLogin Navigation = "login"
)
