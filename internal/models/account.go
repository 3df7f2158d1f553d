package models

// AccountKind tags the three account partitions.
type AccountKind string

const (
	KindUser      AccountKind = "user"
	KindMiddleman AccountKind = "middleman"
	KindCompany   AccountKind = "company"
)

// ParseAccountKind validates a role string from a request body.
func ParseAccountKind(role string) (AccountKind, bool) {
	switch AccountKind(role) {
	case KindUser, KindMiddleman, KindCompany:
		return AccountKind(role), true
	}
	return "", false
}

// AccountBase holds the identity fields shared by every account kind. Phone
// lives on the concrete models: it identifies users and middlemen, so only
// those partitions index it uniquely.
type AccountBase struct {
	Name          string `json:"name"`
	PasswordHash  string `json:"-"`
	WalletAddress string `json:"wallet_address"`
}

// User submits recyclable pickup requests. Phone is unique among users.
type User struct {
	BaseModel
	AccountBase
	Phone string `gorm:"uniqueIndex" json:"phone"`
	Items []Item `json:"items,omitempty"`
}

// Kind reports the account partition.
func (User) Kind() AccountKind { return KindUser }

// Middleman claims and fulfills pickup requests. Phone is unique among middlemen.
type Middleman struct {
	BaseModel
	AccountBase
	Phone string `gorm:"uniqueIndex" json:"phone"`
}

// Kind reports the account partition.
func (Middleman) Kind() AccountKind { return KindMiddleman }

// Company verifies completed pickups. Registered by wallet address and email,
// each unique among companies.
type Company struct {
	BaseModel
	AccountBase
	Phone       string  `json:"phone"`
	Email       string  `gorm:"uniqueIndex" json:"email"`
	CompanyType string  `json:"company_type"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Lat         float64 `json:"lat"`
	Long        float64 `json:"long"`
}

// Kind reports the account partition.
func (Company) Kind() AccountKind { return KindCompany }
