package cmd

import (
	"fmt"

	"github.com/AnyUserName/hextile-cli/internal/pipeline"
	"github.com/AnyUserName/hextile-cli/internal/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// profileKeys are the viper keys that override profile fields. Each has a
// flag of the same name.
var profileKeys = []string{"h-min", "h-max", "v-min", "v-max", "crop-w", "crop-h", "size", "filter"}

// addProfileFlags registers --profile and the per-field overrides.
func addProfileFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("profile", "p", profile.DefaultName, fmt.Sprintf("sheet profile %v", profile.Names()))
	f.Int("h-min", 0, "minimum horizontal hex spacing (0 = profile default)")
	f.Int("h-max", 0, "maximum horizontal hex spacing (0 = profile default)")
	f.Int("v-min", 0, "minimum vertical hex spacing (0 = profile default)")
	f.Int("v-max", 0, "maximum vertical hex spacing (0 = profile default)")
	f.Int("crop-w", 0, "crop window width around each center (0 = profile default)")
	f.Int("crop-h", 0, "crop window height around each center (0 = profile default)")
	f.Int("size", 0, "output tile size in pixels (0 = profile default)")
	f.String("filter", "", "resampling filter: lanczos, catmullrom, box, linear")
}

// bindFlags binds cmd's flags to viper at run time, so commands sharing
// flag names do not steal each other's bindings.
func bindFlags(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		if fl := cmd.Flags().Lookup(name); fl != nil {
			if err := viper.BindPFlag(name, fl); err != nil {
				return fmt.Errorf("bind --%s: %w", name, err)
			}
		}
	}
	return nil
}

// resolveProfile loads the named profile and applies config, env and
// flag overrides.
func resolveProfile(cmd *cobra.Command) (profile.Profile, error) {
	if err := bindFlags(cmd, append([]string{"profile"}, profileKeys...)...); err != nil {
		return profile.Profile{}, err
	}

	prof := profile.Get(viper.GetString("profile"))
	overrideInt := func(key string, dst *int) {
		if v := viper.GetInt(key); v > 0 {
			*dst = v
		}
	}
	overrideInt("h-min", &prof.HMin)
	overrideInt("h-max", &prof.HMax)
	overrideInt("v-min", &prof.VMin)
	overrideInt("v-max", &prof.VMax)
	overrideInt("crop-w", &prof.CropW)
	overrideInt("crop-h", &prof.CropH)
	overrideInt("size", &prof.OutputSize)
	if f := viper.GetString("filter"); f != "" {
		prof.Filter = f
	}

	if err := prof.Validate(); err != nil {
		return prof, err
	}
	return prof, nil
}

// resolveSources picks sources from, in order: positional args, --source
// flags, the config file's sources list, the built-in defaults.
func resolveSources(cmd *cobra.Command, args []string) ([]pipeline.Source, error) {
	raw := args
	if len(raw) == 0 {
		raw, _ = cmd.Flags().GetStringArray("source")
	}
	if len(raw) > 0 {
		sources := make([]pipeline.Source, 0, len(raw))
		for _, s := range raw {
			src, err := pipeline.ParseSource(s)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
		}
		return sources, nil
	}

	if viper.IsSet("sources") {
		var sources []pipeline.Source
		if err := viper.UnmarshalKey("sources", &sources); err != nil {
			return nil, fmt.Errorf("config sources: %w", err)
		}
		for i, s := range sources {
			if s.Input == "" || s.Output == "" {
				return nil, fmt.Errorf("config sources[%d]: input and output are required", i)
			}
		}
		if len(sources) > 0 {
			return sources, nil
		}
	}

	return pipeline.DefaultSources, nil
}
