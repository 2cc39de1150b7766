package models

import "sort"

// SortPosts orders a displayed page in place by the view-state sort field:
// "id", "title" or "reactions" (likes plus dislikes). An empty field keeps
// the server order. Any sortOrder other than "desc" sorts ascending.
func SortPosts(posts []Post, sortBy, sortOrder string) {
	var less func(a, b Post) bool
	switch sortBy {
	case "id":
		less = func(a, b Post) bool { return a.ID < b.ID }
	case "title":
		less = func(a, b Post) bool { return a.Title < b.Title }
	case "reactions":
		less = func(a, b Post) bool {
			return a.Reactions.Likes+a.Reactions.Dislikes < b.Reactions.Likes+b.Reactions.Dislikes
		}
	default:
		return
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if sortOrder == "desc" {
			return less(posts[j], posts[i])
		}
		return less(posts[i], posts[j])
	})
}
