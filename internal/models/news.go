package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NewsDraft     = "DRAFT"
	NewsPublished = "PUBLISHED"
	NewsArchived  = "ARCHIVED"
	NewsDeleted   = "DELETED"

	CommentActive    = "ACTIVE"
	CommentModerated = "MODERATED"
	CommentDeleted   = "DELETED"
)

type NewsPost struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title    string `gorm:"size:255;uniqueIndex;not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Summary  string `gorm:"type:text" json:"summary"`
	Category string `gorm:"size:100;index" json:"category"`

	AuthorID       uint          `gorm:"not null;index" json:"author_id"`
	Author         *User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"author,omitempty"`
	BusinessUserID *uint         `gorm:"index" json:"business_user_id"`
	BusinessUser   *BusinessUser `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Tags          datatypes.JSON `gorm:"type:json" json:"tags"`
	FeaturedImage string         `gorm:"size:500" json:"featured_image"`
	Status        string         `gorm:"size:20;not null;default:'DRAFT';index" json:"status"`
	PublishDate   *time.Time     `json:"publish_date"`
	ExpiryDate    *time.Time     `json:"expiry_date"`
	IsFeatured    bool           `gorm:"not null;default:false" json:"is_featured"`
	IsTopStory    bool           `gorm:"not null;default:false" json:"is_top_story"`

	SEOTitle       string         `gorm:"size:255" json:"seo_title"`
	SEODescription string         `gorm:"type:text" json:"seo_description"`
	SEOKeywords    string         `gorm:"size:500" json:"seo_keywords"`
	MetaData       datatypes.JSON `gorm:"type:json" json:"meta_data"`

	ViewCount    int `gorm:"not null;default:0" json:"view_count"`
	LikeCount    int `gorm:"not null;default:0" json:"like_count"`
	ShareCount   int `gorm:"not null;default:0" json:"share_count"`
	CommentCount int `gorm:"not null;default:0" json:"comment_count"`

	Audit
}

type NewsComment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	NewsID          uint  `gorm:"not null;index" json:"news_id"`
	UserID          uint  `gorm:"not null;index" json:"user_id"`
	ParentCommentID *uint `gorm:"index" json:"parent_comment_id"`

	Content   string `gorm:"type:text;not null" json:"content"`
	Status    string `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	LikeCount int    `gorm:"not null;default:0" json:"like_count"`

	Replies []NewsComment `gorm:"-" json:"replies,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewsLike struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	NewsID   uint   `gorm:"not null;uniqueIndex:idx_news_like_user" json:"news_id"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_news_like_user;index" json:"user_id"`
	LikeType string `gorm:"size:20;not null;default:'LIKE'" json:"like_type"`

	CreatedAt time.Time `json:"created_at"`
}

type NewsShare struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	NewsID        uint   `gorm:"not null;index" json:"news_id"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	SharePlatform string `gorm:"size:20;not null;index" json:"share_platform"`
	ShareURL      string `gorm:"size:500" json:"share_url"`

	CreatedAt time.Time `json:"created_at"`
}
