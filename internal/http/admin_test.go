package http

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarium/internal/entities"
)

func TestAdminController_Dashboard(t *testing.T) {
	env, cleanup := setupHTTPTest(t)
	defer cleanup()

	book := env.createBook(t, "Dune", "")
	user, member := env.createMember(t, "alice")
	_, err := env.circulation.Request(member.ID, book.ID)
	require.NoError(t, err)

	router := env.newRouter(user.ID, user.Username, true)
	w := get(router, "/admin")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pending=1")
}

func TestAdminController_IssuedBooksPage(t *testing.T) {
	env, cleanup := setupHTTPTest(t)
	defer cleanup()

	dune := env.createBook(t, "Dune", "")
	emma := env.createBook(t, "Emma", "")
	admin, member := env.createMember(t, "alice")

	_, err := env.circulation.Request(member.ID, dune.ID)
	require.NoError(t, err)
	issued, err := env.circulation.Request(member.ID, emma.ID)
	require.NoError(t, err)
	require.NoError(t, env.circulation.Approve(issued.ID))

	router := env.newRouter(admin.ID, admin.Username, true)

	t.Run("unfiltered list shows every record", func(t *testing.T) {
		w := get(router, "/admin/issued-books")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "[Dune:REQUESTED]")
		assert.Contains(t, w.Body.String(), "[Emma:ISSUED]")
	})

	t.Run("status filter narrows the list", func(t *testing.T) {
		w := get(router, "/admin/issued-books?status=ISSUED")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "[Dune:REQUESTED]")
		assert.Contains(t, w.Body.String(), "[Emma:ISSUED]")
	})

	t.Run("text search matches book titles", func(t *testing.T) {
		w := get(router, "/admin/issued-books?q=emma")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "Dune")
		assert.Contains(t, w.Body.String(), "Emma")
	})
}

func TestAdminController_BooksPage(t *testing.T) {
	env, cleanup := setupHTTPTest(t)
	defer cleanup()

	env.createBook(t, "Dune", "Science Fiction")
	unavailable := env.createBook(t, "Hyperion", "Science Fiction")
	require.NoError(t, env.db.DB.Model(unavailable).Update("is_available", false).Error)
	admin, _ := env.createMember(t, "alice")

	router := env.newRouter(admin.ID, admin.Username, true)

	t.Run("availability filter", func(t *testing.T) {
		w := get(router, "/admin/books?available=no")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "[Hyperion:false]")
		assert.NotContains(t, w.Body.String(), "[Dune:true]")
	})

	t.Run("text search", func(t *testing.T) {
		w := get(router, "/admin/books?q=dune")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "[Dune:true]")
		assert.NotContains(t, w.Body.String(), "Hyperion")
	})
}

func TestAdminController_BookDetailPage(t *testing.T) {
	env, cleanup := setupHTTPTest(t)
	defer cleanup()

	book := env.createBook(t, "Dune", "Science Fiction")
	admin, member := env.createMember(t, "alice")
	router := env.newRouter(admin.ID, admin.Username, true)

	t.Run("shows the book with no open loans", func(t *testing.T) {
		w := get(router, "/admin/books/"+uintString(book.ID))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dune available=true issued=0")
	})

	t.Run("counts only ISSUED records", func(t *testing.T) {
		record, err := env.circulation.Request(member.ID, book.ID)
		require.NoError(t, err)
		require.NoError(t, env.circulation.Approve(record.ID))

		w := get(router, "/admin/books/"+uintString(book.ID))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dune available=false issued=1")
	})

	t.Run("unknown book is a 404", func(t *testing.T) {
		w := get(router, "/admin/books/9999")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdminController_MemberDetailPage(t *testing.T) {
	env, cleanup := setupHTTPTest(t)
	defer cleanup()

	book := env.createBook(t, "Dune", "")
	admin, member := env.createMember(t, "bob")
	record, err := env.circulation.Request(member.ID, book.ID)
	require.NoError(t, err)
	require.NoError(t, env.circulation.Approve(record.ID))

	router := env.newRouter(admin.ID, admin.Username, true)

	t.Run("shows the member with their request history", func(t *testing.T) {
		w := get(router, "/admin/members/"+uintString(member.ID))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "bob:[Dune:ISSUED]")
	})

	t.Run("unknown member is a 404", func(t *testing.T) {
		w := get(router, "/admin/members/9999")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdminController_MembersPage(t *testing.T) {
	env, cleanup := setupHTTPTest(t)
	defer cleanup()

	admin, _ := env.createMember(t, "alice")
	_, employee := env.createMember(t, "bob")
	require.NoError(t, env.db.DB.Model(employee).
		Update("member_type", entities.MemberTypeEmployee).Error)

	router := env.newRouter(admin.ID, admin.Username, true)

	w := get(router, "/admin/members?type=EMPLOYEE")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "[bob]")
	assert.NotContains(t, w.Body.String(), "[alice]")
}

func TestAdminController_IssuedBookAction(t *testing.T) {
	t.Run("approve issues the selected requests", func(t *testing.T) {
		env, cleanup := setupHTTPTest(t)
		defer cleanup()

		book := env.createBook(t, "Dune", "")
		admin, member := env.createMember(t, "alice")
		record, err := env.circulation.Request(member.ID, book.ID)
		require.NoError(t, err)

		router := env.newRouter(admin.ID, admin.Username, true)
		w := postForm(router, "/admin/issued-books/action", url.Values{
			"action": {"approve"},
			"ids":    {uintString(record.ID)},
		})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, issuedBooksPath, w.Header().Get("Location"))

		reloaded, err := env.issues.ByID(record.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusIssued, reloaded.Status)
		assert.False(t, reloaded.Book.IsAvailable)
	})

	t.Run("return closes issued records", func(t *testing.T) {
		env, cleanup := setupHTTPTest(t)
		defer cleanup()

		book := env.createBook(t, "Dune", "")
		admin, member := env.createMember(t, "alice")
		record, err := env.circulation.Request(member.ID, book.ID)
		require.NoError(t, err)
		require.NoError(t, env.circulation.Approve(record.ID))

		router := env.newRouter(admin.ID, admin.Username, true)
		w := postForm(router, "/admin/issued-books/action", url.Values{
			"action": {"return"},
			"ids":    {uintString(record.ID)},
		})

		assert.Equal(t, http.StatusFound, w.Code)

		reloaded, err := env.issues.ByID(record.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusReturned, reloaded.Status)
		require.NotNil(t, reloaded.ActualReturnDate)
		assert.True(t, reloaded.Book.IsAvailable)
	})

	t.Run("reject leaves the book untouched", func(t *testing.T) {
		env, cleanup := setupHTTPTest(t)
		defer cleanup()

		book := env.createBook(t, "Dune", "")
		admin, member := env.createMember(t, "alice")
		record, err := env.circulation.Request(member.ID, book.ID)
		require.NoError(t, err)

		router := env.newRouter(admin.ID, admin.Username, true)
		w := postForm(router, "/admin/issued-books/action", url.Values{
			"action": {"reject"},
			"ids":    {uintString(record.ID)},
		})

		assert.Equal(t, http.StatusFound, w.Code)

		reloaded, err := env.issues.ByID(record.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusRejected, reloaded.Status)
		assert.True(t, reloaded.Book.IsAvailable)
	})

	t.Run("mixed selection applies only where the lifecycle allows", func(t *testing.T) {
		env, cleanup := setupHTTPTest(t)
		defer cleanup()

		dune := env.createBook(t, "Dune", "")
		emma := env.createBook(t, "Emma", "")
		admin, member := env.createMember(t, "alice")

		pending, err := env.circulation.Request(member.ID, dune.ID)
		require.NoError(t, err)
		rejected, err := env.circulation.Request(member.ID, emma.ID)
		require.NoError(t, err)
		require.NoError(t, env.circulation.Reject(rejected.ID))

		router := env.newRouter(admin.ID, admin.Username, true)
		w := postForm(router, "/admin/issued-books/action", url.Values{
			"action": {"approve"},
			"ids":    {uintString(pending.ID), uintString(rejected.ID)},
		})

		assert.Equal(t, http.StatusFound, w.Code)

		approvedRecord, err := env.issues.ByID(pending.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusIssued, approvedRecord.Status)

		untouched, err := env.issues.ByID(rejected.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusRejected, untouched.Status)
	})

	t.Run("empty selection is a no-op", func(t *testing.T) {
		env, cleanup := setupHTTPTest(t)
		defer cleanup()

		admin, _ := env.createMember(t, "alice")
		router := env.newRouter(admin.ID, admin.Username, true)

		w := postForm(router, "/admin/issued-books/action", url.Values{
			"action": {"approve"},
		})
		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("unknown action redirects with an error flash", func(t *testing.T) {
		env, cleanup := setupHTTPTest(t)
		defer cleanup()

		admin, _ := env.createMember(t, "alice")
		router := env.newRouter(admin.ID, admin.Username, true)

		w := postForm(router, "/admin/issued-books/action", url.Values{
			"action": {"destroy"},
			"ids":    {"1"},
		})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, issuedBooksPath, w.Header().Get("Location"))
	})
}
