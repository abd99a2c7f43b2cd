package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *InstallRequest) DeepCopyInto(out *InstallRequest) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy copies the receiver, creating a new InstallRequest.
func (in *InstallRequest) DeepCopy() *InstallRequest {
	if in == nil {
		return nil
	}
	out := new(InstallRequest)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject copies the receiver, creating a new runtime.Object.
func (in *InstallRequest) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *InstallRequestList) DeepCopyInto(out *InstallRequestList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]InstallRequest, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy copies the receiver, creating a new InstallRequestList.
func (in *InstallRequestList) DeepCopy() *InstallRequestList {
	if in == nil {
		return nil
	}
	out := new(InstallRequestList)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject copies the receiver, creating a new runtime.Object.
func (in *InstallRequestList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *InstallRequestSpec) DeepCopyInto(out *InstallRequestSpec) {
	*out = *in
	if in.Packages != nil {
		out.Packages = make(map[string]CandidatePackage, len(in.Packages))
		for name, pkg := range in.Packages {
			var c CandidatePackage
			pkg.DeepCopyInto(&c)
			out.Packages[name] = c
		}
	}
	if in.TimeoutSeconds != nil {
		out.TimeoutSeconds = new(int32)
		*out.TimeoutSeconds = *in.TimeoutSeconds
	}
}

// DeepCopy copies the receiver, creating a new InstallRequestSpec.
func (in *InstallRequestSpec) DeepCopy() *InstallRequestSpec {
	if in == nil {
		return nil
	}
	out := new(InstallRequestSpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *CandidatePackage) DeepCopyInto(out *CandidatePackage) {
	*out = *in
	if in.Versions != nil {
		out.Versions = make(map[string]map[string]string, len(in.Versions))
		for v, deps := range in.Versions {
			if deps == nil {
				out.Versions[v] = nil
				continue
			}
			cp := make(map[string]string, len(deps))
			for k, r := range deps {
				cp[k] = r
			}
			out.Versions[v] = cp
		}
	}
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *InstallRequestStatus) DeepCopyInto(out *InstallRequestStatus) {
	*out = *in
	if in.ResolvedState != nil {
		out.ResolvedState = make(map[string]string, len(in.ResolvedState))
		for k, v := range in.ResolvedState {
			out.ResolvedState[k] = v
		}
	}
	if in.ResolvedAt != nil {
		out.ResolvedAt = in.ResolvedAt.DeepCopy()
	}
	if in.Conditions != nil {
		out.Conditions = make([]metav1.Condition, len(in.Conditions))
		for i := range in.Conditions {
			in.Conditions[i].DeepCopyInto(&out.Conditions[i])
		}
	}
}

// DeepCopy copies the receiver, creating a new InstallRequestStatus.
func (in *InstallRequestStatus) DeepCopy() *InstallRequestStatus {
	if in == nil {
		return nil
	}
	out := new(InstallRequestStatus)
	in.DeepCopyInto(out)
	return out
}
