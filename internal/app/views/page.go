package views

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/session"
)

// Page is what every template receives.
type Page struct {
	Title   string
	Path    string
	User    *models.User
	Flashes []session.Flash
	Menu    []NavSection
	Data    interface{}
}

// UserName is the name shown in the header.
func (p *Page) UserName() string {
	return p.User.DisplayName()
}

// NewPage collects the session state for a page render. Pending flashes are
// consumed.
func NewPage(c *gin.Context, sessions *session.Manager, title string, data interface{}) *Page {
	ctx := c.Request.Context()
	p := &Page{
		Title: title,
		Path:  c.Request.URL.Path,
		Menu:  Menu(c.Request.URL.Path),
		Data:  data,
	}
	if s := sessions.Get(ctx); s != nil {
		p.User = s.User
	}
	p.Flashes = sessions.PopFlashes(ctx)
	return p
}
