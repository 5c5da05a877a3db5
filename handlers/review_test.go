package handlers_test

import (
	"net/http"
	"testing"

	"quickbite/config"
	"quickbite/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deliveredOrder seeds an order already in the delivered state.
func deliveredOrder(t *testing.T, customerID, restaurantID uint) *models.Order {
	t.Helper()
	order := placedOrder(t, customerID, restaurantID)
	require.NoError(t, config.DB.Model(order).Update("status", models.StatusDelivered).Error)
	order.Status = models.StatusDelivered
	return order
}

func TestCreateReview_RequiresDeliveredOwnOrder(t *testing.T) {
	r := setupRouter(t)
	customer, token := newUser(t, models.RoleCustomer)
	_, strangerToken := newUser(t, models.RoleCustomer)
	owner, _ := newUser(t, models.RoleOwner)
	restaurant := newRestaurant(t, owner.ID)
	order := placedOrder(t, customer.ID, restaurant.ID)

	// Not delivered yet → business-rule error
	w := doJSON(r, "POST", "/api/reviews", token, map[string]any{"order_id": order.ID, "restaurant_rating": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.NoError(t, config.DB.Model(order).Update("status", models.StatusDelivered).Error)

	// Someone else's order → 403
	w = doJSON(r, "POST", "/api/reviews", strangerToken, map[string]any{"order_id": order.ID, "restaurant_rating": 5})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Missing order → 404
	w = doJSON(r, "POST", "/api/reviews", token, map[string]any{"order_id": 9999, "restaurant_rating": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Rating out of range → 400
	w = doJSON(r, "POST", "/api/reviews", token, map[string]any{"order_id": order.ID, "restaurant_rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, "POST", "/api/reviews", token, map[string]any{"order_id": order.ID, "restaurant_rating": 5})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateReview_OnePerCustomerOrder(t *testing.T) {
	r := setupRouter(t)
	customer, token := newUser(t, models.RoleCustomer)
	owner, _ := newUser(t, models.RoleOwner)
	restaurant := newRestaurant(t, owner.ID)
	order := deliveredOrder(t, customer.ID, restaurant.ID)

	w := doJSON(r, "POST", "/api/reviews", token, map[string]any{"order_id": order.ID, "restaurant_rating": 4})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, "POST", "/api/reviews", token, map[string]any{"order_id": order.ID, "restaurant_rating": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already reviewed")
}

func TestCreateReview_RecomputesRatingAggregate(t *testing.T) {
	r := setupRouter(t)
	owner, _ := newUser(t, models.RoleOwner)
	restaurant := newRestaurant(t, owner.ID)

	ratings := []int{5, 4, 4} // mean 4.333… → 4.3
	for _, rating := range ratings {
		customer, token := newUser(t, models.RoleCustomer)
		order := deliveredOrder(t, customer.ID, restaurant.ID)
		w := doJSON(r, "POST", "/api/reviews", token, map[string]any{"order_id": order.ID, "restaurant_rating": rating})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var got models.Restaurant
	require.NoError(t, config.DB.First(&got, restaurant.ID).Error)
	assert.InDelta(t, 4.3, got.RatingAvg, 0.001)
	assert.EqualValues(t, 3, got.RatingCount)
}

func TestHiddenReviewsExcludedFromAggregate(t *testing.T) {
	r := setupRouter(t)
	_, adminToken := newUser(t, models.RoleAdmin)
	owner, _ := newUser(t, models.RoleOwner)
	restaurant := newRestaurant(t, owner.ID)

	var reviewIDs []uint
	for _, rating := range []int{5, 1} {
		customer, token := newUser(t, models.RoleCustomer)
		order := deliveredOrder(t, customer.ID, restaurant.ID)
		w := doJSON(r, "POST", "/api/reviews", token, map[string]any{"order_id": order.ID, "restaurant_rating": rating})
		require.Equal(t, http.StatusCreated, w.Code)
		var review models.Review
		require.NoError(t, config.DB.Where("order_id = ?", order.ID).First(&review).Error)
		reviewIDs = append(reviewIDs, review.ID)
	}

	// Hide the 1-star review; the aggregate must drop it
	w := doJSON(r, "PUT", "/api/admin/reviews/"+itoa(reviewIDs[1])+"/visibility", adminToken, map[string]any{"is_visible": false})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Restaurant
	require.NoError(t, config.DB.First(&got, restaurant.ID).Error)
	assert.InDelta(t, 5.0, got.RatingAvg, 0.001)
	assert.EqualValues(t, 1, got.RatingCount)
}

func TestListRestaurantReviews_VisibleOnly(t *testing.T) {
	r := setupRouter(t)
	owner, _ := newUser(t, models.RoleOwner)
	restaurant := newRestaurant(t, owner.ID)

	customer, token := newUser(t, models.RoleCustomer)
	order := deliveredOrder(t, customer.ID, restaurant.ID)
	doJSON(r, "POST", "/api/reviews", token, map[string]any{"order_id": order.ID, "restaurant_rating": 5, "comment": "great"})

	hiddenCustomer, hiddenToken := newUser(t, models.RoleCustomer)
	hiddenOrder := deliveredOrder(t, hiddenCustomer.ID, restaurant.ID)
	doJSON(r, "POST", "/api/reviews", hiddenToken, map[string]any{"order_id": hiddenOrder.ID, "restaurant_rating": 1})
	require.NoError(t, config.DB.Model(&models.Review{}).
		Where("order_id = ?", hiddenOrder.ID).Update("is_visible", false).Error)

	w := doJSON(r, "GET", "/api/reviews/restaurant/"+itoa(restaurant.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["items"], 1)
}
