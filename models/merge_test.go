package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeAuthors_Scenario(t *testing.T) {
	posts := []Post{{ID: 1, UserID: 5}}
	users := []User{{ID: 5, Username: "ann"}}

	merged := MergeAuthors(posts, users)

	require.Len(t, merged, 1)
	require.NotNil(t, merged[0].Author)
	assert.Equal(t, 5, merged[0].Author.ID)
	assert.Equal(t, "ann", merged[0].Author.Username)
}

func TestMergeAuthors_UnmatchedPostHasNoAuthor(t *testing.T) {
	posts := []Post{{ID: 1, UserID: 5}, {ID: 2, UserID: 99}}
	users := []User{{ID: 5, Username: "ann"}}

	merged := MergeAuthors(posts, users)

	require.Len(t, merged, 2)
	assert.NotNil(t, merged[0].Author)
	assert.Nil(t, merged[1].Author)
}

func TestMergeAuthors_PreservesOrderAndLength(t *testing.T) {
	posts := []Post{{ID: 3, UserID: 2}, {ID: 1, UserID: 1}, {ID: 2, UserID: 3}}
	users := []User{{ID: 1}, {ID: 2}, {ID: 3}}

	merged := MergeAuthors(posts, users)

	require.Len(t, merged, len(posts))
	for i := range posts {
		assert.Equal(t, posts[i].ID, merged[i].ID)
		require.NotNil(t, merged[i].Author)
		assert.Equal(t, posts[i].UserID, merged[i].Author.ID)
	}
}

func TestMergeAuthors_DoesNotMutateInputs(t *testing.T) {
	posts := []Post{{ID: 1, UserID: 5}}
	users := []User{{ID: 5, Username: "ann"}}

	MergeAuthors(posts, users)

	assert.Nil(t, posts[0].Author)
}

func TestMergeAuthors_FirstMatchingUserWins(t *testing.T) {
	posts := []Post{{ID: 1, UserID: 5}}
	users := []User{{ID: 5, Username: "first"}, {ID: 5, Username: "second"}}

	merged := MergeAuthors(posts, users)

	require.NotNil(t, merged[0].Author)
	assert.Equal(t, "first", merged[0].Author.Username)
}

func TestMergeAuthors_EmptyInputs(t *testing.T) {
	assert.Empty(t, MergeAuthors(nil, []User{{ID: 1}}))

	merged := MergeAuthors([]Post{{ID: 1, UserID: 1}}, nil)
	require.Len(t, merged, 1)
	assert.Nil(t, merged[0].Author)
}
