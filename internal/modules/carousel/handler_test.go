package carousel

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/slipframe/core/internal/models"
)

func mutationStatus(t *testing.T, deck *models.CarouselModel, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	h := &Handler{}
	h.respondMutation(c, deck, err)
	return w.Code
}

func TestRespondMutationStatusMapping(t *testing.T) {
	deck := &models.CarouselModel{
		Name:   "d",
		Slides: models.SlideList{{Position: 0}, {Position: 1}},
	}

	cases := []struct {
		name string
		deck *models.CarouselModel
		err  error
		want int
	}{
		{"success", deck, nil, http.StatusOK},
		{"missing deck", nil, nil, http.StatusNotFound},
		{"minimum slides", nil, models.ErrMinimumSlides, http.StatusUnprocessableEntity},
		{"out of range", nil, models.ErrSlideOutOfRange, http.StatusBadRequest},
		{"unknown variant", nil, models.ErrUnknownVariant, http.StatusBadRequest},
		{"read only", nil, models.ErrReadOnlyCarousel, http.StatusForbidden},
		{"not owner", nil, models.ErrNotOwner, http.StatusForbidden},
	}
	for _, tc := range cases {
		if got := mutationStatus(t, tc.deck, tc.err); got != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, got, tc.want)
		}
	}
}
