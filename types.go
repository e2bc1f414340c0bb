package shinrai

import (
	"encoding/json"
	"fmt"
	"time"
)

// TrustTier classifies an agent's verified trustworthiness. Tiers are
// ordered UNKNOWN < BASIC < VERIFIED < TRUSTED < PRIVILEGED; the ordering is
// evaluated server-side and the client only carries the token.
type TrustTier string

const (
	TierUnknown    TrustTier = "UNKNOWN"
	TierBasic      TrustTier = "BASIC"
	TierVerified   TrustTier = "VERIFIED"
	TierTrusted    TrustTier = "TRUSTED"
	TierPrivileged TrustTier = "PRIVILEGED"
)

var trustTiers = map[TrustTier]bool{
	TierUnknown:    true,
	TierBasic:      true,
	TierVerified:   true,
	TierTrusted:    true,
	TierPrivileged: true,
}

func (t *TrustTier) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "trust tier", trustTiers, t)
}

// AgentRole is the capability an agent claims when requesting a gate
// evaluation.
type AgentRole string

const (
	RoleReader               AgentRole = "READER"
	RoleWriter               AgentRole = "WRITER"
	RoleDataAnalyst          AgentRole = "DATA_ANALYST"
	RoleCodeExecutor         AgentRole = "CODE_EXECUTOR"
	RoleSystemAdmin          AgentRole = "SYSTEM_ADMIN"
	RoleExternalCommunicator AgentRole = "EXTERNAL_COMMUNICATOR"
	RoleResourceManager      AgentRole = "RESOURCE_MANAGER"
	RoleAuditor              AgentRole = "AUDITOR"
)

var agentRoles = map[AgentRole]bool{
	RoleReader:               true,
	RoleWriter:               true,
	RoleDataAnalyst:          true,
	RoleCodeExecutor:         true,
	RoleSystemAdmin:          true,
	RoleExternalCommunicator: true,
	RoleResourceManager:      true,
	RoleAuditor:              true,
}

func (r *AgentRole) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "agent role", agentRoles, r)
}

// ResourceType is the consumable resource a ceiling check is made against.
type ResourceType string

const (
	ResourceAPICalls   ResourceType = "API_CALLS"
	ResourceDataAccess ResourceType = "DATA_ACCESS"
	ResourceCompute    ResourceType = "COMPUTE"
	ResourceStorage    ResourceType = "STORAGE"
	ResourceNetwork    ResourceType = "NETWORK"
)

var resourceTypes = map[ResourceType]bool{
	ResourceAPICalls:   true,
	ResourceDataAccess: true,
	ResourceCompute:    true,
	ResourceStorage:    true,
	ResourceNetwork:    true,
}

func (r *ResourceType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "resource type", resourceTypes, r)
}

// Decision is the outcome of a role-gate evaluation. ESCALATE means the
// request needs human or higher-tier review rather than a final allow/deny.
type Decision string

const (
	DecisionAllow    Decision = "ALLOW"
	DecisionDeny     Decision = "DENY"
	DecisionEscalate Decision = "ESCALATE"
)

var decisions = map[Decision]bool{
	DecisionAllow:    true,
	DecisionDeny:     true,
	DecisionEscalate: true,
}

func (d *Decision) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "decision", decisions, d)
}

// CreationType records how an agent came into existence, for provenance
// lineage.
type CreationType string

const (
	CreationFresh    CreationType = "FRESH"
	CreationCloned   CreationType = "CLONED"
	CreationEvolved  CreationType = "EVOLVED"
	CreationPromoted CreationType = "PROMOTED"
	CreationImported CreationType = "IMPORTED"
)

var creationTypes = map[CreationType]bool{
	CreationFresh:    true,
	CreationCloned:   true,
	CreationEvolved:  true,
	CreationPromoted: true,
	CreationImported: true,
}

func (c *CreationType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "creation type", creationTypes, c)
}

// AlertSeverity grades a gaming alert.
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "LOW"
	SeverityMedium   AlertSeverity = "MEDIUM"
	SeverityHigh     AlertSeverity = "HIGH"
	SeverityCritical AlertSeverity = "CRITICAL"
)

var alertSeverities = map[AlertSeverity]bool{
	SeverityLow:      true,
	SeverityMedium:   true,
	SeverityHigh:     true,
	SeverityCritical: true,
}

func (s *AlertSeverity) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "alert severity", alertSeverities, s)
}

// AlertStatus is the lifecycle state of a gaming alert.
type AlertStatus string

const (
	AlertActive        AlertStatus = "ACTIVE"
	AlertInvestigating AlertStatus = "INVESTIGATING"
	AlertResolved      AlertStatus = "RESOLVED"
	AlertFalsePositive AlertStatus = "FALSE_POSITIVE"
)

var alertStatuses = map[AlertStatus]bool{
	AlertActive:        true,
	AlertInvestigating: true,
	AlertResolved:      true,
	AlertFalsePositive: true,
}

func (s *AlertStatus) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "alert status", alertStatuses, s)
}

// unmarshalEnum decodes a closed string enumeration. An unrecognized token
// fails the containing decode rather than silently defaulting, so protocol
// drift on the server surfaces immediately.
func unmarshalEnum[T ~string](data []byte, name string, valid map[T]bool, dst *T) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("shinrai: %s must be a string: %w", name, err)
	}
	v := T(s)
	if !valid[v] {
		return fmt.Errorf("shinrai: unknown %s %q", name, s)
	}
	*dst = v
	return nil
}

// --- Request types ---

// RoleGateRequest is the input for Client.EvaluateRoleGate. Context is
// free-form metadata (resource id, action name, ...) passed through to the
// evaluator unvalidated.
type RoleGateRequest struct {
	AgentID string            `json:"agentId"`
	Role    AgentRole         `json:"role"`
	Tier    TrustTier         `json:"tier"`
	Context map[string]string `json:"context,omitempty"`
}

// CeilingCheckRequest is the input for Client.CheckCeiling. RequestedAmount
// is forwarded as-is; the server owns all range validation.
type CeilingCheckRequest struct {
	AgentID         string       `json:"agentId"`
	ResourceType    ResourceType `json:"resourceType"`
	RequestedAmount int          `json:"requestedAmount"`
	Tier            *TrustTier   `json:"tier,omitempty"`
}

// ProvenanceCreateRequest is the input for Client.CreateProvenance.
type ProvenanceCreateRequest struct {
	AgentID       string         `json:"agentId"`
	CreationType  CreationType   `json:"creationType"`
	ParentAgentID *string        `json:"parentAgentId,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// AlertStatusUpdate is the input for Client.UpdateAlertStatus.
type AlertStatusUpdate struct {
	Status          AlertStatus `json:"status"`
	ResolvedBy      *string     `json:"resolvedBy,omitempty"`
	ResolutionNotes *string     `json:"resolutionNotes,omitempty"`
}

// --- Response types ---

// RoleGateResponse is the outcome of a role-gate evaluation.
//
// The server is expected to keep Allowed consistent with Decision
// (Allowed == (Decision == ALLOW)), but the client does not enforce that;
// branch on Decision when precision matters.
type RoleGateResponse struct {
	Allowed      bool       `json:"allowed"`
	Decision     Decision   `json:"decision"`
	Reason       string     `json:"reason"`
	EvaluatedAt  time.Time  `json:"evaluatedAt"`
	ProvenanceID *string    `json:"provenanceId,omitempty"`
	RequiredTier *TrustTier `json:"requiredTier,omitempty"`
}

// CeilingCheckResponse is the outcome of a ceiling check.
//
// Remaining is expected to equal max(Ceiling-CurrentUsage, 0); the server
// upholds that invariant, the client merely reports it.
type CeilingCheckResponse struct {
	Allowed      bool      `json:"allowed"`
	CurrentUsage int       `json:"currentUsage"`
	Ceiling      int       `json:"ceiling"`
	Remaining    int       `json:"remaining"`
	ResetAt      time.Time `json:"resetAt"`
	ProvenanceID *string   `json:"provenanceId,omitempty"`
}

// ProvenanceRecord is an audit record correlating a decision back to its
// evaluation context.
type ProvenanceRecord struct {
	ID            string       `json:"id"`
	AgentID       string       `json:"agentId"`
	CreationType  CreationType `json:"creationType"`
	ParentAgentID *string      `json:"parentAgentId,omitempty"`
	LineageHash   *string      `json:"lineageHash,omitempty"`
	ScoreModifier int          `json:"scoreModifier"`
	Verified      bool         `json:"verified"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// Alert is a gaming-detection alert raised by the trust engine.
type Alert struct {
	ID             string         `json:"id"`
	AgentID        string         `json:"agentId"`
	AlertType      string         `json:"alertType"`
	Severity       AlertSeverity  `json:"severity"`
	Status         AlertStatus    `json:"status"`
	Details        map[string]any `json:"details,omitempty"`
	ThresholdValue *float64       `json:"thresholdValue,omitempty"`
	ActualValue    *float64       `json:"actualValue,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	ResolvedAt     *time.Time     `json:"resolvedAt,omitempty"`
	ResolvedBy     *string        `json:"resolvedBy,omitempty"`
}

// --- Dashboard statistics ---

// RoleGateStats counts role-gate evaluations by outcome and tier.
type RoleGateStats struct {
	Total     int            `json:"total"`
	Allowed   int            `json:"allowed"`
	Denied    int            `json:"denied"`
	Escalated int            `json:"escalated"`
	ByTier    map[string]int `json:"byTier,omitempty"`
}

// CeilingStats counts ceiling checks.
type CeilingStats struct {
	TotalChecks int `json:"totalChecks"`
	Exceeded    int `json:"exceeded"`
	NearLimit   int `json:"nearLimit"`
}

// ProvenanceStats counts provenance records by creation type.
type ProvenanceStats struct {
	TotalRecords int            `json:"totalRecords"`
	ByType       map[string]int `json:"byType,omitempty"`
}

// AlertStats counts active alerts by severity.
type AlertStats struct {
	Active     int            `json:"active"`
	BySeverity map[string]int `json:"bySeverity,omitempty"`
}

// DashboardStats is a read-only aggregate snapshot of the trust engine.
type DashboardStats struct {
	RoleGates  RoleGateStats   `json:"roleGates"`
	Ceiling    CeilingStats    `json:"ceiling"`
	Provenance ProvenanceStats `json:"provenance"`
	Alerts     AlertStats      `json:"alerts"`
	Timestamp  time.Time       `json:"timestamp"`
}
