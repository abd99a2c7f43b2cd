package controllers

import (
	"context"
	"errors"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	dnpv1alpha1 "github.com/bayleafwalker/dnp-manager/api/v1alpha1"
	"github.com/bayleafwalker/dnp-manager/internal/resolver"
)

const controllerName = "InstallRequest"

// InstallRequestReconciler resolves InstallRequests into a compatible set of
// package versions and reports it in status. It never installs anything.
//
// RBAC:
// +kubebuilder:rbac:groups=dnp.platform,resources=installrequests,verbs=get;list;watch
// +kubebuilder:rbac:groups=dnp.platform,resources=installrequests/status,verbs=get;update;patch
// +kubebuilder:rbac:groups="",resources=events,verbs=create;patch;update
type InstallRequestReconciler struct {
	client.Client
	Scheme   *runtime.Scheme
	Recorder record.EventRecorder

	// Resolver serves requests that do not override the time budget.
	Resolver resolver.Resolver
	// ResolverOptions configure the resolvers built for per-request budgets.
	ResolverOptions []resolver.Option
}

func (r *InstallRequestReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	dnpControllerReconcileTotal.WithLabelValues(controllerName).Inc()

	logger := log.FromContext(ctx).WithValues(
		"controller", controllerName,
		"namespace", req.Namespace,
		"installRequest", req.Name,
	)

	var ir dnpv1alpha1.InstallRequest
	if err := r.Get(ctx, req.NamespacedName, &ir); err != nil {
		if client.IgnoreNotFound(err) == nil {
			return ctrl.Result{}, nil
		}
		dnpControllerReconcileErrorTotal.WithLabelValues(controllerName).Inc()
		return ctrl.Result{}, err
	}

	if ir.Status.ObservedGeneration == ir.Generation && ir.Status.Phase != "" && ir.Status.Phase != dnpv1alpha1.InstallRequestPhasePending {
		logger.V(1).Info("generation already resolved", "phase", ir.Status.Phase)
		return ctrl.Result{}, nil
	}

	logger = logger.WithValues("requested", ir.Spec.Requested, "packageCount", len(ir.Spec.Packages))
	logger.Info("resolving install request")

	start := time.Now()
	res, err := r.resolverFor(&ir).Resolve(ctx, requestFromSpec(ir.Spec))
	installRequestResolutionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		reason := invalidReason(err)
		installRequestOutcomeTotal.WithLabelValues("invalid").Inc()
		if perr := r.patchStatus(ctx, &ir, dnpv1alpha1.InstallRequestPhaseInvalid, err.Error(), nil, 0, 0,
			metav1.Condition{
				Type:    InstallRequestConditionResolved,
				Status:  metav1.ConditionFalse,
				Reason:  reason,
				Message: err.Error(),
			},
		); perr != nil {
			logger.Error(perr, "failed to patch install request status")
			dnpControllerReconcileErrorTotal.WithLabelValues(controllerName).Inc()
			return ctrl.Result{}, perr
		}
		logger.Info("candidate set rejected", "reason", reason, "error", err.Error())
		r.recordEventf(&ir, corev1.EventTypeWarning, reason, "Candidate set rejected: %v", err)
		return ctrl.Result{}, nil
	}

	installRequestOutcomeTotal.WithLabelValues(string(res.Outcome)).Inc()
	installRequestCombinationsChecked.Observe(float64(res.Checked))

	if !res.Success {
		reason := "SearchExhausted"
		if res.Outcome == resolver.OutcomeTimedOut {
			reason = "SearchTimedOut"
		}
		if perr := r.patchStatus(ctx, &ir, dnpv1alpha1.InstallRequestPhaseUnresolvable, res.Message, nil, res.Checked, res.Total,
			metav1.Condition{
				Type:    InstallRequestConditionResolved,
				Status:  metav1.ConditionFalse,
				Reason:  reason,
				Message: res.Message,
			},
		); perr != nil {
			logger.Error(perr, "failed to patch install request status")
			dnpControllerReconcileErrorTotal.WithLabelValues(controllerName).Inc()
			return ctrl.Result{}, perr
		}
		logger.Info("no compatible state", "outcome", res.Outcome, "checked", res.Checked, "total", res.Total)
		r.recordEventf(&ir, corev1.EventTypeWarning, reason, "%s", res.Message)
		return ctrl.Result{}, nil
	}

	if perr := r.patchStatus(ctx, &ir, dnpv1alpha1.InstallRequestPhaseResolved, res.Message, res.State, res.Checked, res.Total,
		metav1.Condition{
			Type:    InstallRequestConditionResolved,
			Status:  metav1.ConditionTrue,
			Reason:  "CompatibleStateFound",
			Message: res.Message,
		},
	); perr != nil {
		logger.Error(perr, "failed to patch install request status")
		dnpControllerReconcileErrorTotal.WithLabelValues(controllerName).Inc()
		return ctrl.Result{}, perr
	}
	logger.Info("install request resolved", "checked", res.Checked, "total", res.Total, "installCount", len(res.State))
	r.recordEventf(&ir, corev1.EventTypeNormal, "Resolved", "Compatible state: %s", summarizeState(res.State))
	return ctrl.Result{}, nil
}

func (r *InstallRequestReconciler) resolverFor(ir *dnpv1alpha1.InstallRequest) resolver.Resolver {
	if ir.Spec.TimeoutSeconds != nil && *ir.Spec.TimeoutSeconds > 0 {
		opts := append(append([]resolver.Option(nil), r.ResolverOptions...),
			resolver.WithTimeout(time.Duration(*ir.Spec.TimeoutSeconds)*time.Second))
		return resolver.NewDefault(opts...)
	}
	if r.Resolver == nil {
		return resolver.NewDefault(r.ResolverOptions...)
	}
	return r.Resolver
}

func (r *InstallRequestReconciler) patchStatus(ctx context.Context, ir *dnpv1alpha1.InstallRequest, phase dnpv1alpha1.InstallRequestPhase, message string, state map[string]string, checked, total uint64, conds ...metav1.Condition) error {
	before := ir.DeepCopy()
	now := metav1.Now()
	ir.Status.ObservedGeneration = ir.Generation
	ir.Status.Phase = phase
	ir.Status.Message = message
	ir.Status.ResolvedState = state
	ir.Status.Checked = clampInt64(checked)
	ir.Status.Total = clampInt64(total)
	ir.Status.ResolvedAt = &now
	for _, c := range conds {
		setInstallRequestCondition(ir, c)
	}
	return r.Status().Patch(ctx, ir, client.MergeFrom(before))
}

func (r *InstallRequestReconciler) recordEventf(obj client.Object, eventType, reason, messageFmt string, args ...any) {
	if r.Recorder == nil || obj == nil {
		return
	}
	r.Recorder.Eventf(obj, eventType, reason, messageFmt, args...)
}

func (r *InstallRequestReconciler) SetupWithManager(mgr ctrl.Manager) error {
	if r.Resolver == nil {
		r.Resolver = resolver.NewDefault(r.ResolverOptions...)
	}
	return ctrl.NewControllerManagedBy(mgr).
		For(&dnpv1alpha1.InstallRequest{}, builder.WithPredicates(predicate.GenerationChangedPredicate{})).
		Complete(r)
}

// requestFromSpec copies the CRD candidate set into resolver types.
func requestFromSpec(spec dnpv1alpha1.InstallRequestSpec) resolver.Request {
	set := make(resolver.CandidateSet, len(spec.Packages))
	for name, pkg := range spec.Packages {
		versions := make(map[string]resolver.Dependencies, len(pkg.Versions))
		for v, deps := range pkg.Versions {
			versions[v] = resolver.Dependencies(deps)
		}
		set[name] = resolver.Package{
			IsInstalled:      pkg.IsInstalled,
			InstalledVersion: pkg.InstalledVersion,
			Versions:         versions,
		}
	}
	return resolver.Request{Requested: spec.Requested, Packages: set}
}

func invalidReason(err error) string {
	switch {
	case errors.Is(err, resolver.ErrNoCombinations):
		return "NoCombinations"
	case errors.Is(err, resolver.ErrSearchSpaceTooLarge):
		return "SearchSpaceTooLarge"
	default:
		return "InvalidCandidateSet"
	}
}

func clampInt64(v uint64) int64 {
	const maxInt64 = 1<<63 - 1
	if v > maxInt64 {
		return maxInt64
	}
	return int64(v)
}
