/*
Command psrcat serves the pulsar catalog of the MSPSRπ, MSPSRπ2 and PSRπ
VLBA astrometry campaigns.

Contents

  Program overview
  Command line usage
  Configuration
  Catalog files
  Distance bands
  Scene projection
  Selection replay


Program overview

Each campaign publishes its pulsars as a JSON file, and the three files use
three different layouts.  psrcat reads all three, brings every entry to one
record form, and serves the merged catalog: filtered listings, details of
one pulsar, positions in a 3D scene centered on the observer, and the set
of pulsar timing arrays the pulsars belong to.

A campaign file that cannot be read is reported and that campaign is
served empty.  An entry that cannot be read is reported and dropped.  The
rest of the catalog is unaffected.

Sample run:

  $ psrcat list --band low --membership IPTA

lists pulsars nearer than 1 kpc that are timed by the International
Pulsar Timing Array.


Command line usage

  psrcat list [--text s] [--band b] [--campaign c] [--status s] [--membership m]
  psrcat show <campaign> <id-or-name>
  psrcat project [filters as for list]
  psrcat memberships
  psrcat watch
  psrcat replay <events-file>
  psrcat config

Global options are --config <file>, -v for debug logging and --log-json for
JSON log output.  Filters combine; a pulsar is listed only if it matches
all of them.  Text matches any part of the pulsar name, ignoring case.
Campaign names are MSPSRPI, MSPSRPI2 and PSRPI, or the same with π.

watch reloads a campaign whenever its file changes, and runs until
interrupted.


Configuration

Settings are read from .psrcat.yaml in the current directory or the home
directory, or from the file named with --config.  Any setting may also be
given in the environment as PSRCAT_ followed by the key in upper case with
dots replaced by underscores, for example PSRCAT_PROJECTION_SCALE_FACTOR.

  catalog:
    mspsrpi:  {file: data/pulsars.json}
    mspsrpi2: {file: data/mspsrpi2Pulsars.json, url: https://...}
    psrpi:    {file: data/psrpiPulsars.json}
  bands:
    default:  {low: 1, high: 2}
    mspsrpi2: {low: 0.5, high: 1.5}
  projection:
    base_offset: 1.5
    scale_factor: 3.5
  selection:
    debounce: 200ms
  log:
    json: false

When a catalog file cannot be read and a url is configured, a fresh copy
is downloaded to the file and reading is retried.  The PSRπ file is
optional; when it is missing that campaign is empty.

psrcat config prints the effective settings.


Catalog files

MSPSRπ and PSRπ files hold a list of pulsars, bare or under a "pulsars"
key.  Positions are given as "ra" and "dec", or under "coordinates", and
distance is an object with "value" and "uncertainty".  MSPSRπ2 files are a
bare list of observing targets with "position" {rightAscension,
declination}, a distance such as "0.4 kpc", and session fields.

RA is read in hours, for example 04h37m15.9s, 04:37:15.9 or 04 37 15.9.
Dec is read in degrees, for example -47°15'09", -47:15:09 or -47 15 09.
A single number is taken as degrees for both.


Distance bands

Distances divide into low, medium and high bands at two thresholds, by
default 1 and 2 kpc.  A pulsar with no usable distance is in band none.
Every pulsar is in exactly one of the four.  Campaigns may set their own
thresholds.


Scene projection

A pulsar at right ascension α, declination δ and distance d kpc is placed
at radius

  r = base_offset + log10(d + 1) * scale_factor

along the direction (cos δ cos α, sin δ, cos δ sin α).  The scene y axis
points at the north celestial pole.  psrcat project prints campaign/id,
name and x, y, z for each pulsar with a usable position.


Selection replay

The portal highlights one pulsar at a time.  With a mouse, the highlight
follows hover.  On a touch device a tap selects a pulsar, a second tap or
a tap on the background clears it; a background tap within the debounce
time of a pulsar tap is ignored.  replay feeds a recorded session through
this logic and prints the highlighted pulsar after each event.

  device: {max_touch_points: 5}
  events:
    - {at: 0s, kind: tap, id: J0437-4715}
    - {at: 120ms, kind: background}
    - {at: 1s, kind: background}

Event kinds are hover, leave, tap, background, maximize, restore and
visible (with ids, the pulsars still shown after filtering).

-------------
Public domain.
*/
package main
