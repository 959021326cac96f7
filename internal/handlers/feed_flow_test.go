package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube-app/yatube/internal/models"
	"github.com/yatube-app/yatube/internal/pagination"
	"github.com/yatube-app/yatube/internal/services"
)

type feedResponse struct {
	Posts []services.PostView `json:"posts"`
	Page  pagination.Page     `json:"page"`
}

func decodeFeed(t *testing.T, w *httptest.ResponseRecorder) feedResponse {
	t.Helper()

	require.Equal(t, http.StatusOK, w.Code)
	var feed feedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	return feed
}

// TestFeedPagination: thirteen posts split into a full first page and a
// three-post second page, on the homepage, the group feed and the
// profile feed alike.
func TestFeedPagination(t *testing.T) {
	s := setupServer(t)

	author, _ := s.createUser(t, "leo")
	group := s.createGroup(t, "test_slug")
	for i := 0; i < 13; i++ {
		s.createPost(t, author, group, fmt.Sprintf("post %d", i))
	}

	targets := []string{"/", "/group/test_slug/", "/profile/leo/"}
	for _, target := range targets {
		first := decodeFeed(t, s.get(t, target, ""))
		assert.Len(t, first.Posts, 10, "%s page 1", target)
		assert.Equal(t, 1, first.Page.Number)
		assert.Equal(t, 2, first.Page.NumPages)
		assert.Equal(t, int64(13), first.Page.Count)

		second := decodeFeed(t, s.get(t, target+"?page=2", ""))
		assert.Len(t, second.Posts, 3, "%s page 2", target)
		assert.Equal(t, 2, second.Page.Number)
	}
}

// TestFeedOutOfRangePageClamps: asking past the last page returns the
// last page instead of an error.
func TestFeedOutOfRangePageClamps(t *testing.T) {
	s := setupServer(t)

	author, _ := s.createUser(t, "leo")
	for i := 0; i < 13; i++ {
		s.createPost(t, author, nil, fmt.Sprintf("post %d", i))
	}

	feed := decodeFeed(t, s.get(t, "/?page=99", ""))
	assert.Equal(t, 2, feed.Page.Number)
	assert.Len(t, feed.Posts, 3)
}

// TestGroupFeedMembership: a grouped post shows up on the homepage, its
// group feed and the author's profile, and stays out of other groups.
func TestGroupFeedMembership(t *testing.T) {
	s := setupServer(t)

	author, _ := s.createUser(t, "leo")
	group := s.createGroup(t, "test_slug")
	other := s.createGroup(t, "other_slug")
	post := s.createPost(t, author, group, "grouped post")

	for _, target := range []string{"/", "/group/test_slug/", "/profile/leo/"} {
		feed := decodeFeed(t, s.get(t, target, ""))
		require.Len(t, feed.Posts, 1, target)
		assert.Equal(t, post.ID, feed.Posts[0].ID)
		assert.Equal(t, "leo", feed.Posts[0].Author)
		assert.Equal(t, "test_slug", feed.Posts[0].Group)
	}

	empty := decodeFeed(t, s.get(t, "/group/"+other.Slug+"/", ""))
	assert.Empty(t, empty.Posts)
}

// TestFeedNewestFirst: the most recent post leads every feed page.
func TestFeedNewestFirst(t *testing.T) {
	s := setupServer(t)

	author, _ := s.createUser(t, "leo")
	s.createPost(t, author, nil, "older")
	newest := s.createPost(t, author, nil, "newest")

	feed := decodeFeed(t, s.get(t, "/", ""))
	require.Len(t, feed.Posts, 2)
	assert.Equal(t, newest.ID, feed.Posts[0].ID)
	assert.Equal(t, "newest", feed.Posts[0].Text)
}

// TestCommentRequiresLogin: anonymous comment attempts bounce to login
// and leave the database untouched.
func TestCommentRequiresLogin(t *testing.T) {
	s := setupServer(t)

	author, _ := s.createUser(t, "leo")
	post := s.createPost(t, author, nil, "test post")
	target := fmt.Sprintf("/posts/%d/comment/", post.ID)

	w := s.postForm(t, target, "", url.Values{"text": {"drive-by comment"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/auth/login/?next=")
	assert.Equal(t, int64(0), s.countRows(t, &models.Comment{}))
}

// TestCommentFlow: a logged-in comment lands on the post page and shows
// up in the detail payload.
func TestCommentFlow(t *testing.T) {
	s := setupServer(t)

	author, _ := s.createUser(t, "leo")
	_, token := s.createUser(t, "reader")
	post := s.createPost(t, author, nil, "test post")
	detailURL := fmt.Sprintf("/posts/%d/", post.ID)

	w := s.postForm(t, detailURL+"comment/", token, url.Values{"text": {"nice one"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailURL, w.Header().Get("Location"))
	assert.Equal(t, int64(1), s.countRows(t, &models.Comment{}))

	detail := s.get(t, detailURL, "")
	require.Equal(t, http.StatusOK, detail.Code)
	assert.Contains(t, detail.Body.String(), "nice one")
	assert.Contains(t, detail.Body.String(), "reader")
}

// TestCommentEmptyTextRejected: blank comments are a 400, nothing is
// stored.
func TestCommentEmptyTextRejected(t *testing.T) {
	s := setupServer(t)

	author, _ := s.createUser(t, "leo")
	_, token := s.createUser(t, "reader")
	post := s.createPost(t, author, nil, "test post")

	w := s.postForm(t, fmt.Sprintf("/posts/%d/comment/", post.ID), token, url.Values{"text": {"   "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), s.countRows(t, &models.Comment{}))
}

// TestFollowUnfollow covers the subscribe/unsubscribe round trip: both
// redirect back to the profile, duplicates and self-follows are no-ops.
func TestFollowUnfollow(t *testing.T) {
	s := setupServer(t)

	s.createUser(t, "leo")
	_, token := s.createUser(t, "reader")

	w := s.get(t, "/profile/leo/follow/", token)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/leo/", w.Header().Get("Location"))
	assert.Equal(t, int64(1), s.countRows(t, &models.Follow{}))

	// Following twice keeps a single row.
	s.get(t, "/profile/leo/follow/", token)
	assert.Equal(t, int64(1), s.countRows(t, &models.Follow{}))

	// Self-follow is silently ignored.
	s.get(t, "/profile/reader/follow/", token)
	assert.Equal(t, int64(1), s.countRows(t, &models.Follow{}))

	w = s.get(t, "/profile/leo/unfollow/", token)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/leo/", w.Header().Get("Location"))
	assert.Equal(t, int64(0), s.countRows(t, &models.Follow{}))

	// Unfollowing again stays at zero.
	s.get(t, "/profile/leo/unfollow/", token)
	assert.Equal(t, int64(0), s.countRows(t, &models.Follow{}))
}

// TestFollowUnknownAuthor: subscribing to a missing profile is a 404.
func TestFollowUnknownAuthor(t *testing.T) {
	s := setupServer(t)

	_, token := s.createUser(t, "reader")

	w := s.get(t, "/profile/nobody/follow/", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestFollowFeedVisibility: a followed author's post appears in the
// follower's feed and nowhere else.
func TestFollowFeedVisibility(t *testing.T) {
	s := setupServer(t)

	author, _ := s.createUser(t, "leo")
	_, followerToken := s.createUser(t, "follower")
	_, outsiderToken := s.createUser(t, "outsider")

	s.get(t, "/profile/leo/follow/", followerToken)
	post := s.createPost(t, author, nil, "for my followers")

	followed := decodeFeed(t, s.get(t, "/follow/", followerToken))
	require.Len(t, followed.Posts, 1)
	assert.Equal(t, post.ID, followed.Posts[0].ID)

	outside := decodeFeed(t, s.get(t, "/follow/", outsiderToken))
	assert.Empty(t, outside.Posts)
}

// TestProfileFollowingFlag: the profile payload tells the viewer
// whether they already follow the author.
func TestProfileFollowingFlag(t *testing.T) {
	s := setupServer(t)

	s.createUser(t, "leo")
	_, token := s.createUser(t, "reader")

	var profile services.ProfileFeed

	w := s.get(t, "/profile/leo/", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.False(t, profile.Following)
	assert.Equal(t, "leo", profile.Author.Username)

	s.get(t, "/profile/leo/follow/", token)

	w = s.get(t, "/profile/leo/", token)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.True(t, profile.Following)
}
