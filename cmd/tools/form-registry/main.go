// cmd/tools/form-registry/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MDSCJ/Data-Collection/internal/common/logger"
	"github.com/MDSCJ/Data-Collection/internal/form/validator"
	"github.com/MDSCJ/Data-Collection/pkg/registry"
)

var registryPath string

var rootCmd = &cobra.Command{
	Use:   "form-registry",
	Short: "Maintain the respondent field registry",
	Example: `  form-registry add --name village --label Village --rules required
  form-registry update --name phone --field label --value "Mobile Number"
  form-registry validate --path configs/form.json`,
	SilenceUsage: true,
}

func addCommand() *cobra.Command {
	var def registry.FieldDefinition
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a field to the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := addField(registryPath, def, time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added field: %s\n", def.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&def.Name, "name", "", "document key (e.g. village)")
	cmd.Flags().StringVar(&def.Label, "label", "", "label shown in messages")
	cmd.Flags().StringVar(&def.Kind, "kind", registry.KindText, "input kind (text, tel, email)")
	cmd.Flags().StringVar(&def.Rules, "rules", "", "validator rules (e.g. required,min=2)")
	cmd.Flags().StringVar(&def.Placeholder, "placeholder", "", "placeholder text")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("label")
	return cmd
}

func updateCommand() *cobra.Command {
	var name, field, value string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update one attribute of an existing field",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := updateField(registryPath, name, field, value, time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated field %s, %s to %q\n", name, field, value)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "field to update")
	cmd.Flags().StringVar(&field, "field", "", "attribute (label, kind, rules, placeholder)")
	cmd.Flags().StringVar(&value, "value", "", "new value")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

func validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the registry file and its rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := validateRegistry(registryPath)
			if err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d fields.\n", len(reg.Fields))
			return nil
		},
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&registryPath, "path", "configs/form.json", "path to registry file")
	rootCmd.AddCommand(addCommand(), updateCommand(), validateCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addField(path string, def registry.FieldDefinition, now time.Time) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.FormRegistry{Version: "1"}
	}
	if _, exists := reg.Field(def.Name); exists {
		return fmt.Errorf("field %s already exists", def.Name)
	}
	reg.Fields = append(reg.Fields, def)
	return save(reg, path, now)
}

func updateField(path, name, field, value string, now time.Time) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	def, ok := reg.Field(name)
	if !ok {
		return fmt.Errorf("field %s not found", name)
	}
	switch field {
	case "label":
		def.Label = value
	case "kind":
		def.Kind = value
	case "rules":
		def.Rules = value
	case "placeholder":
		def.Placeholder = value
	default:
		return fmt.Errorf("unknown attribute: %s", field)
	}
	return save(reg, path, now)
}

// validateRegistry loads the file and compiles its rules the way the form does at startup.
func validateRegistry(path string) (*registry.FormRegistry, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, err
	}
	for _, f := range reg.Fields {
		if f.Label == "" {
			return nil, fmt.Errorf("field %s missing label", f.Name)
		}
	}
	if _, err := validator.New(reg, logger.NewNoOpLogger()); err != nil {
		return nil, err
	}
	return reg, nil
}

func save(reg *registry.FormRegistry, path string, now time.Time) error {
	if err := reg.Validate(); err != nil {
		return err
	}
	if _, err := validator.New(reg, logger.NewNoOpLogger()); err != nil {
		return err
	}
	reg.LastUpdated = now.Format("2006-01-02")
	return registry.SaveRegistry(reg, path)
}
