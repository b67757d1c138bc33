package services

// Services defined in this package:
// - AuthService: operator login and token issuance
// - StudentService: student intake and lookups
// - VolunteerService: volunteer intake, lookups and deactivation
// - MatchingService: one matching run (candidates, allocation, persistence gate)
// - ApprovalService: the pending -> approved/rejected state machine
// - NotificationService: post-approval email dispatch and its audit trail
//
// Each service declares the narrow store interface it consumes; the pgx
// repositories satisfy them and tests substitute hand-written mocks.
