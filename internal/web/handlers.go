package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/chrome"
	"taskboard/internal/controller"
	"taskboard/internal/taskview"
)

// pageData is what the index template renders.
type pageData struct {
	Tree   taskview.Node
	Panel  chrome.PanelClasses
	Form   controller.Form
	Alert  string
	Fading bool
}

// viewResponse is the JSON form of the page state.
type viewResponse struct {
	State     string          `json:"state"`
	Tree      taskview.Node   `json:"tree"`
	PanelOpen bool            `json:"panel_open"`
	Form      controller.Form `json:"form"`
}

func (s *Server) handleIndex(c *gin.Context) {
	tree := s.ctrl.Board().Tree()
	c.HTML(http.StatusOK, "index.html", pageData{
		Tree:   tree,
		Panel:  s.panel.Classes(),
		Form:   s.ctrl.Form(),
		Alert:  s.flash.take(),
		Fading: hasFading(tree),
	})
}

func (s *Server) handleSubmit(c *gin.Context) {
	s.panel.Hide()
	// Failures surface through the flash alert on the next render.
	_ = s.ctrl.SubmitTask(c.Request.Context(), c.PostForm("title"), c.PostForm("content"))
	redirectHome(c)
}

func (s *Server) handleCancel(c *gin.Context) {
	s.ctrl.CancelTask()
	s.panel.Hide()
	redirectHome(c)
}

func (s *Server) handleRemove(c *gin.Context) {
	s.ctrl.RemoveTaskView(c.Param("key"))
	redirectHome(c)
}

func (s *Server) handlePanel(open bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if open {
			s.panel.Show()
		} else {
			s.panel.Hide()
		}
		redirectHome(c)
	}
}

func (s *Server) handleReload(c *gin.Context) {
	// Read failures are logged by the controller and leave the page as it was.
	_ = s.ctrl.LoadTasks(c.Request.Context())
	redirectHome(c)
}

func (s *Server) handleAPIView(c *gin.Context) {
	board := s.ctrl.Board()
	c.JSON(http.StatusOK, viewResponse{
		State:     board.State().String(),
		Tree:      board.Tree(),
		PanelOpen: s.panel.Open(),
		Form:      s.ctrl.Form(),
	})
}

func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

func hasFading(tree taskview.Node) bool {
	for _, n := range tree.Children {
		if n.HasClass(taskview.ClassFadeOut) {
			return true
		}
	}
	return false
}
