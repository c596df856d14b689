// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	PendingRegistration struct {
		ID, UserID, Email, Status, CreatedAt string

		User string
	}
	Post struct {
		ID, Title, Content, Image, CreatedAt, UserID string

		User string
	}
	Session struct {
		ID, UserID, ExpiresAt, CreatedAt string

		User string
	}
	StorageObject struct {
		Bucket, Path, ContentType, Size, Data, CreatedAt string
	}
	User struct {
		ID, Email, PasswordHash, IsAdmin, Approved, CreatedAt string
	}
}{
	PendingRegistration: struct {
		ID, UserID, Email, Status, CreatedAt string

		User string
	}{
		ID:        "id",
		UserID:    "user_id",
		Email:     "email",
		Status:    "status",
		CreatedAt: "created_at",

		User: "User",
	},
	Post: struct {
		ID, Title, Content, Image, CreatedAt, UserID string

		User string
	}{
		ID:        "id",
		Title:     "title",
		Content:   "content",
		Image:     "image",
		CreatedAt: "created_at",
		UserID:    "user_id",

		User: "User",
	},
	Session: struct {
		ID, UserID, ExpiresAt, CreatedAt string

		User string
	}{
		ID:        "id",
		UserID:    "user_id",
		ExpiresAt: "expires_at",
		CreatedAt: "created_at",

		User: "User",
	},
	StorageObject: struct {
		Bucket, Path, ContentType, Size, Data, CreatedAt string
	}{
		Bucket:      "bucket",
		Path:        "path",
		ContentType: "content_type",
		Size:        "size",
		Data:        "data",
		CreatedAt:   "created_at",
	},
	User: struct {
		ID, Email, PasswordHash, IsAdmin, Approved, CreatedAt string
	}{
		ID:           "id",
		Email:        "email",
		PasswordHash: "password_hash",
		IsAdmin:      "is_admin",
		Approved:     "approved",
		CreatedAt:    "created_at",
	},
}

var Tables = struct {
	PendingRegistration struct {
		Name, Alias string
	}
	Post struct {
		Name, Alias string
	}
	Session struct {
		Name, Alias string
	}
	StorageObject struct {
		Name, Alias string
	}
	User struct {
		Name, Alias string
	}
}{
	PendingRegistration: struct {
		Name, Alias string
	}{
		Name:  "pending_registrations",
		Alias: "t",
	},
	Post: struct {
		Name, Alias string
	}{
		Name:  "posts",
		Alias: "t",
	},
	Session: struct {
		Name, Alias string
	}{
		Name:  "sessions",
		Alias: "t",
	},
	StorageObject: struct {
		Name, Alias string
	}{
		Name:  "storage_objects",
		Alias: "t",
	},
	User: struct {
		Name, Alias string
	}{
		Name:  "users",
		Alias: "t",
	},
}

type PendingRegistration struct {
	tableName struct{} `pg:"pending_registrations,alias:t,discard_unknown_columns"`

	ID        string    `pg:"id,pk,type:uuid"`
	UserID    string    `pg:"user_id,type:uuid,use_zero"`
	Email     string    `pg:"email,use_zero"`
	Status    string    `pg:"status,use_zero"`
	CreatedAt time.Time `pg:"created_at,use_zero"`

	User *User `pg:"fk:user_id,rel:has-one"`
}

type Post struct {
	tableName struct{} `pg:"posts,alias:t,discard_unknown_columns"`

	ID        string    `pg:"id,pk,type:uuid"`
	Title     string    `pg:"title,use_zero"`
	Content   string    `pg:"content,use_zero"`
	Image     *string   `pg:"image"`
	CreatedAt time.Time `pg:"created_at,use_zero"`
	UserID    string    `pg:"user_id,type:uuid,use_zero"`

	User *User `pg:"fk:user_id,rel:has-one"`
}

type Session struct {
	tableName struct{} `pg:"sessions,alias:t,discard_unknown_columns"`

	ID        string    `pg:"id,pk,type:uuid"`
	UserID    string    `pg:"user_id,type:uuid,use_zero"`
	ExpiresAt time.Time `pg:"expires_at,use_zero"`
	CreatedAt time.Time `pg:"created_at,use_zero"`

	User *User `pg:"fk:user_id,rel:has-one"`
}

type StorageObject struct {
	tableName struct{} `pg:"storage_objects,alias:t,discard_unknown_columns"`

	Bucket      string    `pg:"bucket,pk"`
	Path        string    `pg:"path,pk"`
	ContentType string    `pg:"content_type,use_zero"`
	Size        int64     `pg:"size,use_zero"`
	Data        []byte    `pg:"data,use_zero"`
	CreatedAt   time.Time `pg:"created_at,use_zero"`
}

type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID           string    `pg:"id,pk,type:uuid"`
	Email        string    `pg:"email,use_zero"`
	PasswordHash string    `pg:"password_hash,use_zero"`
	IsAdmin      bool      `pg:"is_admin,use_zero"`
	Approved     bool      `pg:"approved,use_zero"`
	CreatedAt    time.Time `pg:"created_at,use_zero"`
}
