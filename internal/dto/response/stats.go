package response

type GlobalStats struct {
	TotalUsers        int64            `json:"total_users"`
	UsersByRole       map[string]int64 `json:"users_by_role"`
	TotalServices     int64            `json:"total_services"`
	TotalBookings     int64            `json:"total_bookings"`
	BookingsByStatus  map[string]int64 `json:"bookings_by_status"`
	TotalReviews      int64            `json:"total_reviews"`
	CompletedRevenue  float64          `json:"completed_revenue"`
}
