package v1alpha1

// Context carries the resolved configuration into a command run
type Context struct {
	Config *ConfigSpec
}
