package kubectl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_AllowsReadOnlyCommands(t *testing.T) {
	commands := []string{
		"kubectl get pods",
		"kubectl get pods -n default",
		"kubectl get deployments --all-namespaces -o wide",
		"kubectl describe deployment nginx",
		"kubectl explain pods",
		"kubectl config view",
		"kubectl config get-contexts",
		"kubectl version",
		"kubectl version --client",
		"kubectl api-resources",
		"kubectl cluster-info",
	}

	for _, command := range commands {
		t.Run(command, func(t *testing.T) {
			verdict := Classify(command)
			assert.True(t, verdict.Allowed, "expected %q to be allowed, got reason: %s", command, verdict.Reason)
			assert.Empty(t, verdict.Reason)
		})
	}
}

func TestClassify_RejectsMissingPrefix(t *testing.T) {
	commands := []string{
		"",
		"kubectl",
		"get pods",
		"helm list",
		"echo kubectl get pods",
		"KUBECTL get pods",
	}

	for _, command := range commands {
		t.Run("command "+command, func(t *testing.T) {
			verdict := Classify(command)
			assert.False(t, verdict.Allowed)
			assert.Contains(t, verdict.Reason, "prefix")
		})
	}
}

func TestClassify_RejectsWriteVerbs(t *testing.T) {
	commands := []string{
		"kubectl delete pod nginx",
		"kubectl apply -f config.yaml",
		"kubectl create namespace test",
		"kubectl patch deployment nginx -p '{}'",
		"kubectl replace -f pod.yaml",
		"kubectl edit deployment nginx",
		"kubectl scale deployment nginx --replicas=3",
		"kubectl cordon node-1",
		"kubectl drain node-1",
		"kubectl taint nodes node-1 key=value:NoSchedule",
		"kubectl label --overwrite pod nginx env=prod",
		"kubectl annotate --overwrite pod nginx note=x",
	}

	for _, command := range commands {
		t.Run(command, func(t *testing.T) {
			verdict := Classify(command)
			assert.False(t, verdict.Allowed, "expected %q to be denied", command)
			assert.Contains(t, verdict.Reason, "not allowed in read-only mode")
		})
	}
}

// A write verb anywhere in the command denies it, even when the leading
// token is a read verb.
func TestClassify_WriteVerbOverridesReadPrefix(t *testing.T) {
	commands := []string{
		"kubectl get pods; kubectl delete pod x",
		"kubectl get pods && kubectl apply -f x.yaml",
		"kubectl describe pod $(kubectl delete pod x)",
		"kubectl get secrets -o yaml | kubectl apply -f -",
	}

	for _, command := range commands {
		t.Run(command, func(t *testing.T) {
			verdict := Classify(command)
			assert.False(t, verdict.Allowed, "expected %q to be denied", command)
		})
	}
}

// The substring scan is deliberately coarse: a resource whose name merely
// contains a write verb is rejected. This documents inherited behavior.
func TestClassify_SubstringFalsePositive(t *testing.T) {
	verdict := Classify("kubectl get service update-service")
	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Reason, "Update")
}

func TestClassify_ConfigSubcommandsDoNotAlias(t *testing.T) {
	assert.True(t, Classify("kubectl config get-contexts").Allowed)
	assert.True(t, Classify("kubectl config view").Allowed)

	// "config" alone is not an allowed operation, and delete-context must
	// not match the allowed config family.
	assert.False(t, Classify("kubectl config delete-context prod").Allowed)
	assert.False(t, Classify("kubectl config use-context prod").Allowed)
	assert.False(t, Classify("kubectl config set-context prod").Allowed)
}

func TestClassify_DenyByDefault(t *testing.T) {
	commands := []string{
		"kubectl logs nginx",
		"kubectl exec -it nginx -- sh",
		"kubectl port-forward svc/nginx 8080:80",
		"kubectl top pods",
		"kubectl rollout status deployment/nginx",
	}

	for _, command := range commands {
		t.Run(command, func(t *testing.T) {
			verdict := Classify(command)
			assert.False(t, verdict.Allowed, "expected %q to be denied", command)
			assert.Contains(t, verdict.Reason, "allow list")
		})
	}
}

func TestClassify_RejectsCompoundCommands(t *testing.T) {
	commands := []string{
		"kubectl get pods; kubectl get services",
		"kubectl get pods | grep nginx",
		"kubectl get pods && kubectl get services",
		"kubectl get pods || kubectl get services",
		"kubectl get pods > /tmp/pods.txt",
		"kubectl get pods $(echo -n default)",
		"kubectl get pods &",
	}

	for _, command := range commands {
		t.Run(command, func(t *testing.T) {
			verdict := Classify(command)
			assert.False(t, verdict.Allowed, "expected %q to be denied", command)
		})
	}
}

func TestClassify_AllowsQuotedArguments(t *testing.T) {
	commands := []string{
		`kubectl get pods -o jsonpath='{.items[*].metadata.name}'`,
		`kubectl get pods -l "app=nginx"`,
	}

	for _, command := range commands {
		t.Run(command, func(t *testing.T) {
			assert.True(t, Classify(command).Allowed)
		})
	}
}

// Classification is a pure function of the command text.
func TestClassify_Deterministic(t *testing.T) {
	commands := []string{
		"kubectl get pods",
		"kubectl delete pod nginx",
		"not a kubectl command",
	}

	for _, command := range commands {
		first := Classify(command)
		second := Classify(command)
		assert.Equal(t, first, second)
	}
}
