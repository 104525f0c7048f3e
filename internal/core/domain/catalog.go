package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrDuplicateSlug = errors.New("slug already in use")
var ErrCategoryNotFound = errors.New("category not found")
var ErrInsufficientStock = errors.New("insufficient stock")

// Product is a catalog item.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Slug        string    `json:"slug" bson:"slug"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	CategoryID  string    `json:"category_id" bson:"category_id"`
	Images      []string  `json:"images,omitempty" bson:"images,omitempty"`
	IsActive    bool      `json:"is_active" bson:"is_active"`
	IsFeatured  bool      `json:"is_featured" bson:"is_featured"`
	SoldCount   int       `json:"sold_count" bson:"sold_count"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Category is a catalog grouping. Categories form a tree through
// ParentID; an empty ParentID marks a root node.
type Category struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Slug        string    `json:"slug" bson:"slug"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	ParentID    string    `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	SortOrder   int       `json:"sort_order" bson:"sort_order"`
	IsActive    bool      `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// CategoryNode is a category plus its resolved children, used by the
// tree endpoint.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children,omitempty"`
}
