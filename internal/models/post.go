package models

import "time"

type Post struct {
	ID        int64     `json:"id"`
	AuthorID  string    `json:"author_id"`
	Username  string    `json:"username"`
	PhotoURL  string    `json:"nome_foto"`
	Caption   string    `json:"desc_foto"`
	Liked     bool      `json:"is_liked"`
	CreatedAt time.Time `json:"data"`
	Comments  []Comment `json:"comments"`
}

type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"id_post"`
	AuthorID  string    `json:"author_id"`
	Username  string    `json:"username"`
	Body      string    `json:"comment_text"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatePostRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	PhotoURL string `json:"nome_foto" validate:"required"`
	Caption  string `json:"desc_foto"`
}

type LikePostsRequest struct {
	LikedPostIDs []int64 `json:"liked_post_ids" validate:"required,min=1"`
}

type CreateCommentRequest struct {
	PostID int64  `json:"id_post" validate:"required,gt=0"`
	Body   string `json:"comment_text" validate:"required"`
}

// PostPage is the paginated feed response.
type PostPage struct {
	Posts       []Post `json:"posts"`
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
	TotalPosts  int    `json:"total_posts"`
}
