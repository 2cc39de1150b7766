package models

// MergeAuthors returns a copy of posts with each entry's Author set to the
// user whose ID matches the post's UserID, or left nil when no user matches.
// Users are indexed once so the join is linear in posts+users. Neither input
// slice is modified.
func MergeAuthors(posts []Post, users []User) []Post {
	byID := make(map[int]*User, len(users))
	for i := range users {
		u := users[i]
		if _, ok := byID[u.ID]; !ok {
			byID[u.ID] = &u
		}
	}

	merged := make([]Post, len(posts))
	for i, p := range posts {
		p.Author = byID[p.UserID]
		merged[i] = p
	}
	return merged
}
