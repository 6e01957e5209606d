package user

// User is the buyer identity stored in the users table. Contact fields are
// the defaults offered at checkout; the order itself keeps its own snapshot.
type User struct {
	ID        int    `json:"userId"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"createAt,omitempty"`
	UpdatedAt string `json:"updateAt,omitempty"`
}
