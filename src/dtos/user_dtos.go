package dtos

type RegisterUserDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Address  string `json:"address"`
}

type LoginUserDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserSummaryDTO struct {
	Username                  string `json:"username"`
	TotalBooksBorrowed        int64  `json:"total_books_borrowed"`
	TotalPendingRequests      int64  `json:"total_pending_req"`
	TotalAcceptedRequests     int64  `json:"total_accepted_req"`
	TotalRejectedRequests     int64  `json:"total_rejected_req"`
	TotalOngoingTransactions  int64  `json:"total_ongoing_trx"`
	TotalFinishedTransactions int64  `json:"total_finished_trx"`
}
