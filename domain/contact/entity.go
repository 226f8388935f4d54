package contact

import (
	"time"

	"github.com/uptrace/bun"
)

// Submission is a row of contact_submissions
type Submission struct {
	bun.BaseModel `bun:"table:contact_submissions,alias:cs"`

	ID        string    `bun:"id,pk,type:uuid"`
	Name      string    `bun:"name,notnull"`
	Email     string    `bun:"email,notnull"`
	Company   string    `bun:"company,notnull"`
	Budget    string    `bun:"budget,notnull"`
	Message   string    `bun:"message,notnull"`
	RemoteIP  string    `bun:"remote_ip,notnull"`
	UserAgent string    `bun:"user_agent,notnull"`
	Notified  bool      `bun:"notified,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()"`
}

// Request is the POST /api/contact body. Website is a honeypot that real
// visitors never see.
type Request struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Company string `json:"company" form:"company"`
	Budget  string `json:"budget" form:"budget"`
	Message string `json:"message" form:"message"`
	Website string `json:"website" form:"website"`
}

// Response is returned on success
type Response struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
