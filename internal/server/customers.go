package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/roommanager/internal/customer/domain"
	"go.uber.org/zap"
)

type customersStatusResponse struct {
	State      string     `json:"state"`
	Size       int        `json:"size"`
	Generation string     `json:"generation,omitempty"`
	Source     string     `json:"source"`
	LoadedAt   *time.Time `json:"loaded_at,omitempty"`
	DurationMs int64      `json:"duration_ms"`
}

func newCustomersStatusResponse(st customerdomain.Status) customersStatusResponse {
	resp := customersStatusResponse{
		State:      st.State,
		Size:       st.Size,
		Source:     st.Source,
		LoadedAt:   st.LoadedAt,
		DurationMs: st.Duration.Milliseconds(),
	}
	if st.Generation != 0 {
		resp.Generation = st.Generation.String()
	}
	return resp
}

func (s *Server) ReloadCustomers(c *gin.Context) {
	st, err := s.loader.Reload(c.Request.Context())
	if err != nil {
		s.log.Warn("customer reload rejected", zap.Error(err))
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": newCustomersStatusResponse(st)})
}

func (s *Server) CustomersStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": newCustomersStatusResponse(s.loader.Status())})
}
