package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// InstallRequestPhase summarizes where a request stands.
type InstallRequestPhase string

const (
	// InstallRequestPhasePending means the current generation has not been resolved yet.
	InstallRequestPhasePending InstallRequestPhase = "Pending"
	// InstallRequestPhaseResolved means a compatible state was found.
	InstallRequestPhaseResolved InstallRequestPhase = "Resolved"
	// InstallRequestPhaseUnresolvable means the search ended without a compatible state.
	InstallRequestPhaseUnresolvable InstallRequestPhase = "Unresolvable"
	// InstallRequestPhaseInvalid means the candidate set was rejected before searching.
	InstallRequestPhaseInvalid InstallRequestPhase = "Invalid"
)

// InstallRequest asks for a consistent set of package versions that installs
// or upgrades one package. The controller only computes the set; applying it
// is left to the host.
//
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Namespaced,shortName=ir
// +kubebuilder:printcolumn:name="Package",type=string,JSONPath=`.spec.requested`
// +kubebuilder:printcolumn:name="Phase",type=string,JSONPath=`.status.phase`
// +kubebuilder:printcolumn:name="Checked",type=integer,JSONPath=`.status.checked`
// +kubebuilder:printcolumn:name="Total",type=integer,JSONPath=`.status.total`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`
type InstallRequest struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   InstallRequestSpec   `json:"spec"`
	Status InstallRequestStatus `json:"status,omitempty"`
}

type InstallRequestSpec struct {
	// Requested is the package the user asked to install or upgrade.
	// +kubebuilder:validation:MinLength=1
	Requested string `json:"requested"`

	// Packages is the closed candidate set, keyed by package name.
	Packages map[string]CandidatePackage `json:"packages"`

	// TimeoutSeconds overrides the controller's resolution time budget.
	// +kubebuilder:validation:Minimum=1
	TimeoutSeconds *int32 `json:"timeoutSeconds,omitempty"`
}

type CandidatePackage struct {
	IsInstalled      bool   `json:"isInstalled,omitempty"`
	InstalledVersion string `json:"installedVersion,omitempty"`

	// Versions maps each offered version to its dependencies (name to semver range).
	Versions map[string]map[string]string `json:"versions"`
}

type InstallRequestStatus struct {
	ObservedGeneration int64               `json:"observedGeneration,omitempty"`
	Phase              InstallRequestPhase `json:"phase,omitempty"`
	Message            string              `json:"message,omitempty"`

	// ResolvedState lists the versions to install. Empty unless Phase is Resolved.
	ResolvedState map[string]string `json:"resolvedState,omitempty"`

	Checked    int64        `json:"checked,omitempty"`
	Total      int64        `json:"total,omitempty"`
	ResolvedAt *metav1.Time `json:"resolvedAt,omitempty"`

	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
type InstallRequestList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []InstallRequest `json:"items"`
}

func init() {
	SchemeBuilder.Register(&InstallRequest{}, &InstallRequestList{})
}
