package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/countup/pkg/animation"
)

func newEasingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "easings",
		Short:             "List easing curve names",
		DisableAutoGenTag: true,
		Args:              cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range animation.EasingNames() {
				curve, _ := animation.LookupEasing(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", name, sparkline(curve, 20))
			}
		},
	}
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline samples curve over [0, 1] into width bars.
func sparkline(curve animation.Curve, width int) string {
	out := make([]rune, width)
	for i := range out {
		t := float64(i) / float64(width-1)
		v := curve(t)
		idx := int(v * float64(len(sparkRunes)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}
