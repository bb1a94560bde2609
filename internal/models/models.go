// Package models defines the persistent entities and association records
// backing the snapcart social storefront.
package models

import "time"

// User is an account holder. Username, email and api_token are unique
// across all users; the api token is minted once at signup and never
// rotated by the store.
type User struct {
	ID           int       `po:"id,integer,primaryKey,serial"`
	Username     string    `po:"username,varchar(64),notNull,unique"`
	Email        string    `po:"email,varchar(120),notNull,unique"`
	PasswordHash string    `po:"password_hash,varchar(128),notNull"`
	APIToken     string    `po:"api_token,varchar(32),notNull,unique"`
	ImgURL       *string   `po:"img_url,varchar(2048)"`
	CreatedAt    time.Time `po:"created_at,timestamptz,notNull,default(NOW())"`
}

// Post is an image post authored by a user. Deleting the author cascades
// to their posts.
type Post struct {
	ID        int       `po:"id,integer,primaryKey,serial"`
	Title     string    `po:"title,varchar(140),notNull"`
	Caption   *string   `po:"caption,varchar(1500)"`
	ImgURL    string    `po:"img_url,varchar(2048),notNull"`
	UserID    int       `po:"user_id,integer,notNull,fk:users.id,ondelete:CASCADE"`
	CreatedAt time.Time `po:"created_at,timestamptz,notNull,default(NOW())"`
}

// Product is a storefront listing owned by a seller. Price is constrained
// non-negative at the database level.
type Product struct {
	ID          int       `po:"id,integer,primaryKey,serial"`
	Name        string    `po:"name,varchar(140),notNull"`
	Description *string   `po:"description,varchar(1500)"`
	ImgURL      *string   `po:"img_url,varchar(2048)"`
	Price       float64   `po:"price,numeric(10,2),notNull"`
	SellerID    int       `po:"seller_id,integer,notNull,fk:users.id,ondelete:CASCADE"`
	CreatedAt   time.Time `po:"created_at,timestamptz,notNull,default(NOW())"`
}

// Like records that a user liked a post. The composite primary key makes
// a second like of the same post by the same user a no-op at the store
// layer and a constraint violation at the database layer.
type Like struct {
	UserID    int       `po:"user_id,integer,primaryKey,fk:users.id,ondelete:CASCADE"`
	PostID    int       `po:"post_id,integer,primaryKey,fk:posts.id,ondelete:CASCADE"`
	CreatedAt time.Time `po:"created_at,timestamptz,notNull,default(NOW())"`
}

// CartItem records that a user placed a product in their cart.
type CartItem struct {
	UserID    int       `po:"user_id,integer,primaryKey,fk:users.id,ondelete:CASCADE"`
	ProductID int       `po:"product_id,integer,primaryKey,fk:products.id,ondelete:CASCADE"`
	CreatedAt time.Time `po:"created_at,timestamptz,notNull,default(NOW())"`
}

// Follow records a directed follower -> followed edge between two users.
// A user cannot follow themselves; the database enforces this with a
// CHECK constraint.
type Follow struct {
	FollowerID int       `po:"follower_id,integer,primaryKey,fk:users.id,ondelete:CASCADE"`
	FollowedID int       `po:"followed_id,integer,primaryKey,fk:users.id,ondelete:CASCADE"`
	CreatedAt  time.Time `po:"created_at,timestamptz,notNull,default(NOW())"`
}
