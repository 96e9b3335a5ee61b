package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"librarium/internal/auth"
	"librarium/internal/circulation"
	"librarium/internal/database/catalog"
	"librarium/internal/database/issues"
	"librarium/internal/database/members"
	"librarium/internal/entities"
)

// recentBooksLimit caps the anonymous landing page listing.
const recentBooksLimit = 5

// CatalogController serves the member-facing pages: home/search, category
// listings, book detail with request submission, and request history.
type CatalogController struct {
	catalog     *catalog.Repository
	members     *members.Repository
	issues      *issues.Repository
	circulation *circulation.Service
	sessions    *auth.SessionManager
}

func NewCatalogController(
	catalogRepo *catalog.Repository,
	membersRepo *members.Repository,
	issuesRepo *issues.Repository,
	circ *circulation.Service,
	sessions *auth.SessionManager,
) *CatalogController {
	return &CatalogController{
		catalog:     catalogRepo,
		members:     membersRepo,
		issues:      issuesRepo,
		circulation: circ,
		sessions:    sessions,
	}
}

// HomePage renders the landing page. Logged-in visitors can search the
// catalog; anonymous visitors see the most recent available books.
func (controller *CatalogController) HomePage(c *gin.Context) {
	query := strings.TrimSpace(c.Query("search"))

	var (
		books      []entities.Book
		categories []entities.Category
		err        error
	)

	switch {
	case auth.IsAuthenticated(c) && query != "":
		books, err = controller.catalog.SearchAvailableBooks(query)
		if err == nil {
			categories, err = controller.catalog.SearchCategories(query, bookIDs(books))
		}
	case auth.IsAuthenticated(c):
		categories, err = controller.catalog.AllCategories()
	default:
		books, err = controller.catalog.RecentAvailableBooks(recentBooksLimit)
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading catalog")
		return
	}

	c.HTML(http.StatusOK, "home", pageData(c, controller.sessions, gin.H{
		"Books":       books,
		"Categories":  categories,
		"SearchQuery": query,
	}))
}

// CategoryPage lists the available books within one category.
func (controller *CatalogController) CategoryPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := controller.catalog.CategoryByID(id)
	if err != nil {
		c.String(http.StatusNotFound, "Category not found")
		return
	}

	books, err := controller.catalog.AvailableBooksByCategory(id)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books")
		return
	}

	c.HTML(http.StatusOK, "book-list", pageData(c, controller.sessions, gin.H{
		"Category": category,
		"Books":    books,
	}))
}

// BookPage renders a book's detail page, including whether the current
// member already holds an active request for it.
func (controller *CatalogController) BookPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.catalog.BookByID(id)
	if err != nil {
		c.String(http.StatusNotFound, "Book not found")
		return
	}

	member, ok := controller.memberForRequest(c)
	if !ok {
		return
	}

	alreadyRequested, err := controller.issues.HasActiveForBook(member.ID, book.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading request state")
		return
	}

	c.HTML(http.StatusOK, "book-detail", pageData(c, controller.sessions, gin.H{
		"Book":             book,
		"AlreadyRequested": alreadyRequested,
	}))
}

// RequestBook submits a book request for the current member. Guard
// violations become warning flashes on the detail page; success redirects
// to the request history.
func (controller *CatalogController) RequestBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, ok := controller.memberForRequest(c)
	if !ok {
		return
	}

	_, err := controller.circulation.Request(member.ID, id)
	switch {
	case err == nil:
		controller.sessions.AddFlash(c.Request, auth.FlashSuccess, "Book request submitted successfully!")
		c.Redirect(http.StatusFound, "/requests")
	case errors.Is(err, circulation.ErrBookUnavailable):
		controller.sessions.AddFlash(c.Request, auth.FlashWarning, "This book is currently not available.")
		c.Redirect(http.StatusFound, bookPath(id))
	case errors.Is(err, circulation.ErrDuplicateRequest):
		controller.sessions.AddFlash(c.Request, auth.FlashWarning,
			"You have already requested this book or it is currently issued to you.")
		c.Redirect(http.StatusFound, bookPath(id))
	case errors.Is(err, circulation.ErrBookNotFound):
		c.String(http.StatusNotFound, "Book not found")
	default:
		c.String(http.StatusInternalServerError, "Error submitting request")
	}
}

// RequestStatusPage lists the member's request history, newest first.
func (controller *CatalogController) RequestStatusPage(c *gin.Context) {
	member, ok := controller.memberForRequest(c)
	if !ok {
		return
	}

	records, err := controller.issues.ListByMember(member.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading requests")
		return
	}

	c.HTML(http.StatusOK, "request-status", pageData(c, controller.sessions, gin.H{
		"Requests": records,
	}))
}

// memberForRequest resolves the current user's member profile. A user
// without one is sent home with an informational flash rather than an
// error page.
func (controller *CatalogController) memberForRequest(c *gin.Context) (*entities.Member, bool) {
	member, err := controller.members.MemberByUserID(GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			controller.sessions.AddFlash(c.Request, auth.FlashError,
				"Your member profile is not set up. Cannot request books.")
		} else {
			controller.sessions.AddFlash(c.Request, auth.FlashError,
				"Could not retrieve your member information.")
		}
		c.Redirect(http.StatusFound, "/")
		return nil, false
	}
	return member, true
}

func bookPath(id uint) string {
	return "/books/" + uintString(id)
}

func bookIDs(books []entities.Book) []uint {
	ids := make([]uint, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	return ids
}
