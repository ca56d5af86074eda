package domain

// Admin is a dashboard operator account.
type Admin struct {
	AdminID       int64    `json:"adminId"`
	Username      string   `json:"username"`
	FullName      string   `json:"fullName"`
	Phone         string   `json:"phone,omitempty"`
	Email         string   `json:"email,omitempty"`
	Status        int      `json:"status"`
	LastLoginTime DateTime `json:"lastLoginTime,omitzero"`
	LastLoginIP   string   `json:"lastLoginIp,omitempty"`
	LoginCount    int      `json:"loginCount,omitempty"`
	CreateTime    DateTime `json:"createTime,omitzero"`
	UpdateTime    DateTime `json:"updateTime,omitzero"`
}

// AdminSession is the payload returned by a successful admin login and
// persisted as the dashboard profile snapshot.
type AdminSession struct {
	Token       string   `json:"token,omitempty"`
	TokenType   string   `json:"tokenType,omitempty"`
	AdminID     int64    `json:"adminId"`
	Username    string   `json:"username"`
	FullName    string   `json:"fullName"`
	Phone       string   `json:"phone,omitempty"`
	Email       string   `json:"email,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// HasPermission reports whether code is among the granted permission codes.
func (s *AdminSession) HasPermission(code string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.Permissions {
		if p == code {
			return true
		}
	}
	return false
}

// AdminRole is a named bundle of permissions.
type AdminRole struct {
	RoleID     int64    `json:"roleId"`
	RoleName   string   `json:"roleName"`
	RoleDesc   string   `json:"roleDesc,omitempty"`
	Status     int      `json:"status"`
	CreateTime DateTime `json:"createTime,omitzero"`
	UpdateTime DateTime `json:"updateTime,omitzero"`
}

// AdminPermission is a single grantable capability.
type AdminPermission struct {
	PermissionID   int64    `json:"permissionId"`
	PermissionCode string   `json:"permissionCode"`
	PermissionName string   `json:"permissionName"`
	ResourceType   string   `json:"resourceType"`
	ResourcePath   string   `json:"resourcePath"`
	IsSensitive    int      `json:"isSensitive"`
	SortOrder      int      `json:"sortOrder"`
	CreateTime     DateTime `json:"createTime,omitzero"`
	UpdateTime     DateTime `json:"updateTime,omitzero"`
}

// OperationLog records one audited admin action.
type OperationLog struct {
	OperationLogID   int64    `json:"operationLogId"`
	AdminID          int64    `json:"adminId"`
	OperationType    string   `json:"operationType"`
	OperationObject  string   `json:"operationObject"`
	ObjectID         int64    `json:"objectId"`
	OperationContent string   `json:"operationContent"`
	OperationIP      string   `json:"operationIp"`
	OperationTime    DateTime `json:"operationTime,omitzero"`
	CreateTime       DateTime `json:"createTime,omitzero"`
}
