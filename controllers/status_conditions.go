package controllers

import (
	"fmt"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	dnpv1alpha1 "github.com/bayleafwalker/dnp-manager/api/v1alpha1"
)

const (
	InstallRequestConditionResolved = "Resolved"

	maxSummarizedPackages = 4
)

func setInstallRequestCondition(ir *dnpv1alpha1.InstallRequest, condition metav1.Condition) {
	if ir == nil {
		return
	}
	condition.ObservedGeneration = ir.Generation
	meta.SetStatusCondition(&ir.Status.Conditions, condition)
}

// summarizeState renders a resolved state as "name@version" pairs, bounded
// for events.
func summarizeState(state map[string]string) string {
	if len(state) == 0 {
		return "nothing to install"
	}
	names := make([]string, 0, len(state))
	for name := range state {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, min(len(names), maxSummarizedPackages)+1)
	for i := 0; i < len(names) && i < maxSummarizedPackages; i++ {
		parts = append(parts, names[i]+"@"+state[names[i]])
	}
	if len(names) > maxSummarizedPackages {
		parts = append(parts, fmt.Sprintf("...and %d more", len(names)-maxSummarizedPackages))
	}
	return strings.Join(parts, ", ")
}
