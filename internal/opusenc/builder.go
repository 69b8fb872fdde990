package opusenc

// BuildArgs returns the encoder argument list for one file. The shape is
// fixed: bitrate flag, source, destination. The bitrate is validated by
// config before any job is scheduled.
func BuildArgs(bitrate, src, dest string) []string {
	return []string{"--bitrate", bitrate, src, dest}
}
