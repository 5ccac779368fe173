package session

// Session is the record written on login. Only one session is stored at a time.
type Session struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	LoginTime int64  `json:"loginTime"`
}
