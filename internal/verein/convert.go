package verein

import "github.com/daniilsolovey/verein-site/internal/db"

func NewPost(p *db.Post) Post {
	return Post{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Image:     NormalizeImage(p.Image),
		CreatedAt: p.CreatedAt,
		UserID:    p.UserID,
	}
}

func NewPosts(list []db.Post) []Post {
	posts := make([]Post, len(list))
	for i := range list {
		posts[i] = NewPost(&list[i])
	}
	return posts
}

func NewPendingRegistration(r *db.PendingRegistration) PendingRegistration {
	return PendingRegistration{
		ID:        r.ID,
		UserID:    r.UserID,
		Email:     r.Email,
		Status:    RegistrationStatus(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

func NewPendingRegistrations(list []db.PendingRegistration) []PendingRegistration {
	regs := make([]PendingRegistration, len(list))
	for i := range list {
		regs[i] = NewPendingRegistration(&list[i])
	}
	return regs
}

func NewUser(u *db.User) User {
	return User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		Approved:     u.Approved,
		CreatedAt:    u.CreatedAt,
	}
}

func NewObject(o *db.StorageObject) Object {
	return Object{
		Bucket:      o.Bucket,
		Path:        o.Path,
		ContentType: o.ContentType,
		Size:        o.Size,
		Data:        o.Data,
		CreatedAt:   o.CreatedAt,
	}
}

func dbPost(p Post) *db.Post {
	return &db.Post{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Image:     NormalizeImage(p.Image),
		CreatedAt: p.CreatedAt,
		UserID:    p.UserID,
	}
}
