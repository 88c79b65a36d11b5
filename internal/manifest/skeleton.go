// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package manifest

// Skeleton is the initial packages.nix written on first run: all five
// categories present and comment-only.
const Skeleton = `# Managed by nixdex
{ pkgs }:

{
  development = with pkgs; [
    # Development tools - compilers, languages, version control
  ];

  productivity = with pkgs; [
    # Productivity applications - browsers, editors, office suites
  ];

  media = with pkgs; [
    # Media applications - audio, video, graphics
  ];

  utilities = with pkgs; [
    # System utilities - terminal tools, system monitors
  ];

  custom = with pkgs; [
    # Custom packages - anything that doesn't fit above
  ];
}
`

// FlakeSkeleton is the companion build descriptor that turns the managed
// manifest into per-category buildEnv outputs.
const FlakeSkeleton = `{
  description = "nixdex - user-managed package collection";
  inputs.nixpkgs.url = "github:NixOS/nixpkgs/nixos-unstable";
  outputs = { self, nixpkgs }:
    let
      systems = [ "x86_64-linux" "aarch64-linux" "x86_64-darwin" "aarch64-darwin" ];
      forAllSystems = nixpkgs.lib.genAttrs systems;
    in {
      packages = forAllSystems (system:
        let
          pkgs = nixpkgs.legacyPackages.${system};
          packageSets = import ./packages.nix { inherit pkgs; };
        in {
          development = pkgs.buildEnv {
            name = "development-packages";
            paths = packageSets.development;
          };
          productivity = pkgs.buildEnv {
            name = "productivity-packages";
            paths = packageSets.productivity;
          };
          media = pkgs.buildEnv {
            name = "media-packages";
            paths = packageSets.media;
          };
          utilities = pkgs.buildEnv {
            name = "utility-packages";
            paths = packageSets.utilities;
          };
          custom = pkgs.buildEnv {
            name = "custom-packages";
            paths = packageSets.custom;
          };
          all = pkgs.buildEnv {
            name = "all-managed-packages";
            paths = packageSets.development
                 ++ packageSets.productivity
                 ++ packageSets.media
                 ++ packageSets.utilities
                 ++ packageSets.custom;
          };
        }
      );
    };
}
`
