package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	allocationdomain "github.com/smallbiznis/roommanager/internal/allocation/domain"
)

const (
	paramPremiumRooms = "availablePremiumRooms"
	paramEconomyRooms = "availableEconomyRooms"
)

type roomAvailabilityResponse struct {
	RoomType       string      `json:"roomType"`
	CustomersCount int         `json:"customersCount"`
	TotalPrice     json.Number `json:"totalPrice"`
	Currency       string      `json:"currency"`
}

func (s *Server) RoomsAvailability(c *gin.Context) {
	premium, err := parseRoomCount(c, paramPremiumRooms)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	economy, err := parseRoomCount(c, paramEconomyRooms)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	outcomes, err := s.allocationSvc.Allocate(c.Request.Context(), allocationdomain.Request{
		Premium: premium,
		Economy: economy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := make([]roomAvailabilityResponse, 0, len(outcomes))
	for _, o := range outcomes {
		resp = append(resp, roomAvailabilityResponse{
			RoomType:       string(o.RoomType),
			CustomersCount: o.CustomersCount,
			TotalPrice:     json.Number(o.TotalPrice.String()),
			Currency:       o.Currency,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func parseRoomCount(c *gin.Context, param string) (int, error) {
	n, err := parseNonNegativeInt(c.Query(param))
	switch {
	case errors.Is(err, errNegative):
		return 0, newValidationError(param, "min", fmt.Sprintf("%s must be greater than or equal to 0", param))
	case errors.Is(err, errTooLarge):
		return 0, newValidationError(param, "max", fmt.Sprintf("%s must be less than or equal to %d", param, math.MaxInt))
	case err != nil:
		return 0, newValidationError(param, "invalid_integer", fmt.Sprintf("%s must be an integer", param))
	}
	return n, nil
}
