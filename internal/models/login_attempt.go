package models

// LoginAttempt one login try, kept for security review. AbuseScore is
// the running count of recent failures for the email at record time.
type LoginAttempt struct {
	BaseModel
	Email      string  `json:"email" gorm:"not null;size:120;index"`
	CompanyID  *uint   `json:"company_id" gorm:"index"`
	IPAddress  *string `json:"ip_address" gorm:"size:45"`
	UserAgent  *string `json:"user_agent" gorm:"size:255"`
	Success    bool    `json:"success" gorm:"not null;default:false"`
	Reason     *string `json:"reason" gorm:"size:100"`
	AbuseScore int     `json:"abuse_score" gorm:"not null;default:0"`
}

// TableName table name
func (a *LoginAttempt) TableName() string {
	return "login_attempts"
}
