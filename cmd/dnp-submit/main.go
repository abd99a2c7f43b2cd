package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"k8s.io/apimachinery/pkg/util/wait"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
	"sigs.k8s.io/controller-runtime/pkg/client"

	dnpv1alpha1 "github.com/bayleafwalker/dnp-manager/api/v1alpha1"
	"github.com/bayleafwalker/dnp-manager/internal/candidates"
	"github.com/bayleafwalker/dnp-manager/internal/config"
	"github.com/bayleafwalker/dnp-manager/internal/resolver"
)

var (
	scheme = runtime.NewScheme()
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(dnpv1alpha1.AddToScheme(scheme))
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	var kubeconfig string
	if home := homedir.HomeDir(); home != "" {
		kubeconfig = filepath.Join(home, ".kube", "config")
	} else {
		kubeconfig = os.Getenv("KUBECONFIG")
	}
	flag.StringVar(&kubeconfig, "kubeconfig", kubeconfig, "absolute path to the kubeconfig file")

	var file string
	var waitFor time.Duration
	flag.StringVar(&file, "f", "", "candidate set file (YAML or JSON)")
	flag.DurationVar(&waitFor, "wait", 2*time.Minute, "how long to wait for the request to be resolved; 0 returns right after creation")
	cfg.BindClient(flag.CommandLine)
	flag.Parse()

	if file == "" {
		log.Fatal("-f is required")
	}
	req, err := candidates.Load(file)
	if err != nil {
		log.Fatal(err)
	}

	restConfig, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		log.Fatalf("Error building kubeconfig: %v", err)
	}
	k8sClient, err := client.New(restConfig, client.Options{Scheme: scheme})
	if err != nil {
		log.Fatalf("Error creating client: %v", err)
	}

	ir := &dnpv1alpha1.InstallRequest{
		ObjectMeta: metav1.ObjectMeta{
			GenerateName: "install-",
			Namespace:    cfg.Namespace,
		},
		Spec: specFromRequest(req),
	}
	if cfg.Timeout > 0 {
		secs := int32(cfg.Timeout.Round(time.Second) / time.Second)
		if secs < 1 {
			secs = 1
		}
		ir.Spec.TimeoutSeconds = &secs
	}

	createStart := time.Now()
	if err := k8sClient.Create(context.Background(), ir); err != nil {
		log.Fatalf("Error creating InstallRequest: %v", err)
	}
	fmt.Printf("Created InstallRequest %s/%s for %s\n", ir.Namespace, ir.Name, req.Requested)
	if waitFor <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()

	var current dnpv1alpha1.InstallRequest
	err = wait.PollUntilContextCancel(ctx, time.Second, true, func(ctx context.Context) (bool, error) {
		if err := k8sClient.Get(ctx, client.ObjectKeyFromObject(ir), &current); err != nil {
			return false, nil
		}
		return current.Status.ObservedGeneration == current.Generation &&
			current.Status.Phase != "" &&
			current.Status.Phase != dnpv1alpha1.InstallRequestPhasePending, nil
	})
	if err != nil {
		log.Fatalf("Timeout waiting for InstallRequest %s: %v", ir.Name, err)
	}

	fmt.Printf("%s after %v: %s\n", current.Status.Phase, time.Since(createStart).Round(time.Millisecond), current.Status.Message)
	names := make([]string, 0, len(current.Status.ResolvedState))
	for name := range current.Status.ResolvedState {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s@%s\n", name, current.Status.ResolvedState[name])
	}
	if current.Status.Phase != dnpv1alpha1.InstallRequestPhaseResolved {
		os.Exit(2)
	}
}

func specFromRequest(req resolver.Request) dnpv1alpha1.InstallRequestSpec {
	spec := dnpv1alpha1.InstallRequestSpec{
		Requested: req.Requested,
		Packages:  make(map[string]dnpv1alpha1.CandidatePackage, len(req.Packages)),
	}
	for name, pkg := range req.Packages {
		versions := make(map[string]map[string]string, len(pkg.Versions))
		for v, deps := range pkg.Versions {
			versions[v] = deps
		}
		spec.Packages[name] = dnpv1alpha1.CandidatePackage{
			IsInstalled:      pkg.IsInstalled,
			InstalledVersion: pkg.InstalledVersion,
			Versions:         versions,
		}
	}
	return spec
}
