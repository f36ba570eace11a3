package member

type CreateMemberRequest struct {
	FirstName        string `json:"firstName" validate:"required,max=100"`
	LastName         string `json:"lastName" validate:"required,max=100"`
	Email            string `json:"email,omitempty" validate:"omitempty,email"`
	Phone            string `json:"phone,omitempty"`
	DateOfBirth      string `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender           string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Address          string `json:"address,omitempty"`
	EmergencyContact string `json:"emergencyContact,omitempty"`
	EmergencyPhone   string `json:"emergencyPhone,omitempty"`
	Photo            string `json:"photo,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

type UpdateMemberRequest struct {
	FirstName        *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName         *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string `json:"phone,omitempty"`
	Gender           *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Address          *string `json:"address,omitempty"`
	EmergencyContact *string `json:"emergencyContact,omitempty"`
	EmergencyPhone   *string `json:"emergencyPhone,omitempty"`
	Photo            *string `json:"photo,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	IsActive         *bool   `json:"isActive,omitempty"`
}

type ListMembersQuery struct {
	Search   string
	IsActive *bool
	Page     int
	Limit    int
}

// MemberWithQR is what create/get return: the record plus the rendered QR PNG.
type MemberWithQR struct {
	Member
	QRCodeImage string `json:"qrCodeImage"`
}
