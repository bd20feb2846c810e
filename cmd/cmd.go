// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func sortFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:    "preset",
			Aliases: []string{"p"},
			Usage:   "Named sort preset (see 'ytsort presets')",
		},
		&cli.StringFlag{
			Name:  "by",
			Usage: "Comma-separated attribute:direction levels, e.g. 'album_release_date:desc,track_number'",
		},
		&cli.StringFlag{
			Name:  "favourites",
			Usage: "Comma-separated favourite artists, most favoured first",
		},
		&cli.StringFlag{
			Name:  "lastfm-user",
			Usage: "Last.fm username for favourite-artist rankings",
		},
		&cli.StringFlag{
			Name:  "lastfm-period",
			Usage: "Last.fm period: overall, 12month, 6month, 3month, 1month, 7day",
		},
		&cli.IntFlag{
			Name:  "lastfm-limit",
			Usage: "Number of top artists to rank",
			Value: 50,
		},
	}
}

// sortCommand handles sorting operations
func sortCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sort",
		Usage: "Sort a playlist and write the new order back",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist-id", UsageText: "Playlist to sort"},
		},
		Flags:  sortFlags(),
		Action: r.SortRun,
		Commands: []*cli.Command{
			{
				Name:  "preview",
				Usage: "Compute the sorted order without writing anything",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlist-id", UsageText: "Playlist to preview"},
				},
				Flags: append(sortFlags(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the preview to a file instead of stdout",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: csv, markdown, txt",
						Value: "txt",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				),
				Action: r.SortPreview,
			},
		},
	}
}

// playlistsCommand lists library playlists
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "List YouTube Music library playlists",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of playlists to return",
				Value: 50,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Playlists,
	}
}

// presetsCommand lists named sort presets
func presetsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "presets",
		Usage:  "List available sort presets",
		Action: r.Presets,
	}
}

// authCommand handles session checks
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Session and proxy checks",
		Commands: []*cli.Command{
			{
				Name:   "test",
				Usage:  "Verify the current browser headers against YouTube Music",
				Action: r.AuthTest,
			},
			{
				Name:   "status",
				Usage:  "Check that the proxy is reachable",
				Action: r.AuthStatus,
			},
		},
	}
}

// setupCommand handles first-run configuration
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration, database, and credentials",
		Commands: []*cli.Command{
			{
				Name:   "db",
				Usage:  "Create the album cache database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:  "headers",
				Usage: "Convert a captured browser request into a proxy headers file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command copied from browser DevTools",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to a file containing the cURL command",
					},
					&cli.StringFlag{
						Name:  "headers-file",
						Usage: "Path to a file containing a raw header block",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path for the headers file",
						Value:   "browser.json",
					},
					&cli.BoolFlag{
						Name:  "upload",
						Usage: "Upload the headers to the proxy after writing",
					},
				},
				Action: r.SetupHeaders,
			},
		},
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		sortCommand, playlistsCommand, presetsCommand, authCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}
