package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"librarium/internal/auth"
	"librarium/internal/database/catalog"
	"librarium/internal/database/issues"
	"librarium/internal/database/members"
	"librarium/internal/entities"
)

// AdminController serves the staff back-office: a dashboard plus list
// views over every catalog and circulation table. Mutations go through
// the bulk actions in admin_actions.go.
type AdminController struct {
	catalog  *catalog.Repository
	members  *members.Repository
	issues   *issues.Repository
	sessions *auth.SessionManager
}

func NewAdminController(
	catalogRepo *catalog.Repository,
	membersRepo *members.Repository,
	issuesRepo *issues.Repository,
	sessions *auth.SessionManager,
) *AdminController {
	return &AdminController{
		catalog:  catalogRepo,
		members:  membersRepo,
		issues:   issuesRepo,
		sessions: sessions,
	}
}

// Dashboard shows circulation totals per status.
func (controller *AdminController) Dashboard(c *gin.Context) {
	counts, err := controller.issues.CountByStatus()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading dashboard")
		return
	}

	pending := counts[entities.StatusRequested]
	c.HTML(http.StatusOK, "admin-dashboard", pageData(c, controller.sessions, gin.H{
		"StatusCounts":    counts,
		"PendingRequests": pending,
		"Statuses":        entities.IssueStatuses,
	}))
}

// CategoriesPage lists categories, optionally filtered by name.
func (controller *AdminController) CategoriesPage(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	var (
		categories []entities.Category
		err        error
	)
	if query != "" {
		categories, err = controller.catalog.SearchCategories(query, nil)
	} else {
		categories, err = controller.catalog.AllCategories()
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading categories")
		return
	}

	c.HTML(http.StatusOK, "admin-categories", pageData(c, controller.sessions, gin.H{
		"Categories":  categories,
		"SearchQuery": query,
	}))
}

// AuthorsPage lists authors, optionally filtered by name.
func (controller *AdminController) AuthorsPage(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	authors, err := controller.catalog.SearchAuthors(query)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading authors")
		return
	}

	c.HTML(http.StatusOK, "admin-authors", pageData(c, controller.sessions, gin.H{
		"Authors":     authors,
		"SearchQuery": query,
	}))
}

// PublishersPage lists publishers, optionally filtered by name.
func (controller *AdminController) PublishersPage(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	publishers, err := controller.catalog.SearchPublishers(query)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading publishers")
		return
	}

	c.HTML(http.StatusOK, "admin-publishers", pageData(c, controller.sessions, gin.H{
		"Publishers":  publishers,
		"SearchQuery": query,
	}))
}

// BooksPage lists books with the admin filters: free text, category and
// availability.
func (controller *AdminController) BooksPage(c *gin.Context) {
	filter := catalog.BookFilter{
		Query: strings.TrimSpace(c.Query("q")),
	}
	if raw := c.Query("category"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	switch c.Query("available") {
	case "yes":
		available := true
		filter.Available = &available
	case "no":
		available := false
		filter.Available = &available
	}

	books, err := controller.catalog.ListBooks(filter)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books")
		return
	}

	categories, err := controller.catalog.AllCategories()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading categories")
		return
	}

	c.HTML(http.StatusOK, "admin-books", pageData(c, controller.sessions, gin.H{
		"Books":           books,
		"Categories":      categories,
		"SearchQuery":     filter.Query,
		"CategoryFilter":  filter.CategoryID,
		"AvailableFilter": c.Query("available"),
	}))
}

// BookDetailPage shows one book with its circulation standing: the
// stored availability flag next to the live count of ISSUED records, so
// a librarian can spot the two disagreeing.
func (controller *AdminController) BookDetailPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.catalog.BookByID(id)
	if err != nil {
		c.String(http.StatusNotFound, "Book not found")
		return
	}

	issuedCount, err := controller.issues.CountIssuedForBook(id)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading circulation state")
		return
	}

	c.HTML(http.StatusOK, "admin-book-detail", pageData(c, controller.sessions, gin.H{
		"Book":        book,
		"IssuedCount": issuedCount,
	}))
}

// EditionsPage lists editions, optionally filtered by serial number or
// book title.
func (controller *AdminController) EditionsPage(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	editions, err := controller.catalog.SearchEditions(query)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading editions")
		return
	}

	c.HTML(http.StatusOK, "admin-editions", pageData(c, controller.sessions, gin.H{
		"Editions":    editions,
		"SearchQuery": query,
	}))
}

// MembersPage lists members with username/email search and a member
// type filter.
func (controller *AdminController) MembersPage(c *gin.Context) {
	filter := members.Filter{
		Query: strings.TrimSpace(c.Query("q")),
	}
	if raw := entities.MemberType(c.Query("type")); raw.Valid() {
		filter.MemberType = raw
	}

	memberList, err := controller.members.List(filter)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading members")
		return
	}

	c.HTML(http.StatusOK, "admin-members", pageData(c, controller.sessions, gin.H{
		"Members":     memberList,
		"MemberTypes": entities.MemberTypes,
		"SearchQuery": filter.Query,
		"TypeFilter":  string(filter.MemberType),
	}))
}

// MemberDetailPage shows one member and their full request history.
func (controller *AdminController) MemberDetailPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := controller.members.MemberByID(id)
	if err != nil {
		c.String(http.StatusNotFound, "Member not found")
		return
	}

	records, err := controller.issues.ListByMember(member.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading request history")
		return
	}

	c.HTML(http.StatusOK, "admin-member-detail", pageData(c, controller.sessions, gin.H{
		"Member":  member,
		"Records": records,
	}))
}

// IssuedBooksPage lists circulation records with search, status and
// member type filters. The rendered page carries checkboxes feeding the
// bulk action endpoint.
func (controller *AdminController) IssuedBooksPage(c *gin.Context) {
	filter := issues.Filter{
		Query: strings.TrimSpace(c.Query("q")),
	}
	if raw := entities.IssueStatus(c.Query("status")); raw != "" && raw.Valid() {
		filter.Status = raw
	}
	if raw := entities.MemberType(c.Query("type")); raw.Valid() {
		filter.MemberType = raw
	}

	records, err := controller.issues.List(filter)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading issued books")
		return
	}

	c.HTML(http.StatusOK, "admin-issued-books", pageData(c, controller.sessions, gin.H{
		"Records":      records,
		"Statuses":     entities.IssueStatuses,
		"MemberTypes":  entities.MemberTypes,
		"SearchQuery":  filter.Query,
		"StatusFilter": string(filter.Status),
		"TypeFilter":   string(filter.MemberType),
	}))
}
