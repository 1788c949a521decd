package fakeservice

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed data/posts.json
var seedPosts []byte

//go:embed data/users.json
var seedUsers []byte

// Post is a blog post record.
type Post struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// User is a user record.
type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Address  Address `json:"address"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Company  Company `json:"company"`
}

type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     Geo    `json:"geo"`
}

type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

// Store holds the seeded records. It is read-only: created posts are echoed back but never
// stored, which is how the public service behaves.
type Store struct {
	posts []Post
	users []User
}

// NewStore loads the embedded seed data.
func NewStore() (*Store, error) {
	s := &Store{}
	if err := json.Unmarshal(seedPosts, &s.posts); err != nil {
		return nil, fmt.Errorf("loading seed posts: %w", err)
	}
	if err := json.Unmarshal(seedUsers, &s.users); err != nil {
		return nil, fmt.Errorf("loading seed users: %w", err)
	}
	sort.Slice(s.posts, func(i, j int) bool { return s.posts[i].ID < s.posts[j].ID })
	sort.Slice(s.users, func(i, j int) bool { return s.users[i].ID < s.users[j].ID })
	return s, nil
}

// NextPostID is the id the service assigns to a created post.
func (s *Store) NextPostID() int {
	if len(s.posts) == 0 {
		return 1
	}
	return s.posts[len(s.posts)-1].ID + 1
}

// Posts returns all posts in id order, or only those of one user if userID is nonzero.
func (s *Store) Posts(userID int) []Post {
	out := make([]Post, 0, len(s.posts))
	for _, p := range s.posts {
		if userID == 0 || p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

// Post returns the post with the given id.
func (s *Store) Post(id int) (Post, bool) {
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// Users returns all users in id order, or only the one with the given id if id is nonzero.
func (s *Store) Users(id int) []User {
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		if id == 0 || u.ID == id {
			out = append(out, u)
		}
	}
	return out
}

// User returns the user with the given id.
func (s *Store) User(id int) (User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}
