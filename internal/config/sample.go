package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# algo configuration
version: "1.0"

# Working data every algorithm derives its input from. Numbers outside the
# allowed range are clamped.
settings:
  array_size: 20        # 5..50
  speed: 300            # milliseconds between visible steps, 50..2000
  data_type: random     # random | sorted | reverse | nearly-sorted
  graph_type: sparse    # complete | sparse | chain | tree
  show_step_count: true

output:
  default_format: text  # text | json | markdown | csv
  color_mode: auto      # auto | always | never
  verbose: false
  emoji: true
  show_frames: false    # print every frame during "algo run"

ui:
  theme: default        # default | high-contrast | minimal
  alt_screen: true
  show_help: true

compare:
  rounds: 1             # inputs per algorithm, 1..100
  concurrency: 4        # runners executing at once
  seed: 0               # 0 picks a random seed
`
}

// MinimalSampleConfig returns a compact configuration with the essentials
func MinimalSampleConfig() string {
	return `version: "1.0"
settings:
  array_size: 20
  speed: 300
  data_type: random
  graph_type: sparse
output:
  default_format: text
`
}
