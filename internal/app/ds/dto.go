package ds

import "time"

// Request and response shapes of the REST API.

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	UserID    int       `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Username  string `json:"username" binding:"required,min=3,max=50,username"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,min=8,max=72,password"`
}

// RegisterResult reports a taken username or email as Success=false rather
// than as an error.
type RegisterResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
	UserID   int    `json:"userId,omitempty"`
}

type UserDTO struct {
	ID        int       `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ShipRequest struct {
	Name   string  `json:"name" binding:"required,max=100"`
	Length float64 `json:"length" binding:"required,gt=0,lte=1000"`
	Type   string  `json:"type" binding:"max=50"`
}

type ShipDTO struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Length    float64   `json:"length"`
	Type      string    `json:"type"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	IsDeleted bool      `json:"isDeleted"`
}

type BerthRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Location    string `json:"location" binding:"required,max=200"`
	MaxShipSize int    `json:"maxShipSize" binding:"required,gt=0"`
	Status      string `json:"status"` // empty means Available
}

type BerthDTO struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Location    string      `json:"location"`
	MaxShipSize int         `json:"maxShipSize"`
	Status      BerthStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	IsDeleted   bool        `json:"isDeleted"`
}

type BerthDetailDTO struct {
	BerthDTO
	Reservations []ReservationDTO `json:"reservations"`
}

type ReservationRequest struct {
	BerthID            int       `json:"berthId" binding:"required,gt=0"`
	ShipID             int       `json:"shipId" binding:"required,gt=0"`
	ScheduledArrival   time.Time `json:"scheduledArrival" binding:"required"`
	ScheduledDeparture time.Time `json:"scheduledDeparture" binding:"required"`
}

type ReservationDTO struct {
	ID                 int               `json:"id"`
	BerthID            int               `json:"berthId"`
	BerthName          string            `json:"berthName"`
	ShipID             int               `json:"shipId"`
	ShipName           string            `json:"shipName"`
	UserID             int               `json:"userId"`
	ScheduledArrival   time.Time         `json:"scheduledArrival"`
	ScheduledDeparture time.Time         `json:"scheduledDeparture"`
	Status             ReservationStatus `json:"status"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
	IsDeleted          bool              `json:"isDeleted"`
}

type DockingRecordRequest struct {
	BerthID       int       `json:"berthId" binding:"required,gt=0"`
	ShipID        int       `json:"shipId" binding:"required,gt=0"`
	ArrivalTime   time.Time `json:"arrivalTime" binding:"required"`
	DepartureTime time.Time `json:"departureTime" binding:"required"`
}

type DockingRecordDTO struct {
	ID            int       `json:"id"`
	BerthID       int       `json:"berthId"`
	ShipID        int       `json:"shipId"`
	ShipName      string    `json:"shipName"`
	UserID        int       `json:"userId"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	DepartureTime time.Time `json:"departureTime"`
	CreatedAt     time.Time `json:"createdAt"`
}
