package models

// CommentUser is the author summary embedded in every comment.
type CommentUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

type Comment struct {
	ID     int         `json:"id"`
	Body   string      `json:"body"`
	PostID int         `json:"postId"`
	Likes  int         `json:"likes"`
	User   CommentUser `json:"user"`
}

type CommentList struct {
	Comments []Comment `json:"comments"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

type CommentCreate struct {
	Body   string `json:"body"`
	PostID int    `json:"postId"`
	UserID int    `json:"userId"`
}

type CommentUpdate struct {
	Body string `json:"body"`
}
