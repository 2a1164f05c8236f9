package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/petfriends-qa/petfriends-api-tests/pkg/petfriends"
)

var errNoCredentials = errors.New("petfriends_email and petfriends_password must be set")

type petInput struct {
	name       string
	animalType string
	age        string
}

func addPetFlags(fs *pflag.FlagSet, in *petInput) {
	fs.StringVar(&in.name, "name", "", "pet name")
	fs.StringVar(&in.animalType, "type", "", "animal type")
	fs.StringVar(&in.age, "age", "", "age in years")
}

func newKeyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "key",
		Short: "Obtain an auth key for the configured credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.GetAPIKey(cmd.Context(), a.cfg.Email, a.cfg.Password)
			if err != nil {
				return err
			}
			return a.print(cmd, res)
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all pets or only mine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := a.authKey(cmd)
			if err != nil {
				return err
			}
			res, err := a.client.ListPets(cmd.Context(), key, petfriends.Filter(filter))
			if err != nil {
				return err
			}
			return a.print(cmd, res)
		},
	}
	cmd.Flags().StringVar(&filter, "filter", string(petfriends.FilterAll), `"" for all pets, "my_pets" for mine`)

	return cmd
}

func newCreateCmd(a *app) *cobra.Command {
	var (
		in    petInput
		photo string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pet, with a photo when --photo is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := a.authKey(cmd)
			if err != nil {
				return err
			}

			var res *petfriends.Result
			if photo != "" {
				res, err = a.client.AddNewPetFromFile(cmd.Context(), key, in.name, in.animalType, in.age, photo)
			} else {
				res, err = a.client.CreatePetSimple(cmd.Context(), key, in.name, in.animalType, in.age)
			}
			if err != nil {
				return err
			}
			return a.print(cmd, res)
		},
	}
	addPetFlags(cmd.Flags(), &in)
	cmd.Flags().StringVar(&photo, "photo", "", "path of an image to upload with the pet")

	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var in petInput

	cmd := &cobra.Command{
		Use:   "update <pet-id>",
		Short: "Update name, type and age of one of my pets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.authKey(cmd)
			if err != nil {
				return err
			}
			res, err := a.client.UpdatePetInfo(cmd.Context(), key, args[0], in.name, in.animalType, in.age)
			if err != nil {
				return err
			}
			return a.print(cmd, res)
		},
	}
	addPetFlags(cmd.Flags(), &in)

	return cmd
}

func newPhotoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "photo <pet-id> <file>",
		Short: "Set the photo of one of my pets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.authKey(cmd)
			if err != nil {
				return err
			}
			res, err := a.client.SetPhotoFromFile(cmd.Context(), key, args[0], args[1])
			if err != nil {
				return err
			}
			return a.print(cmd, res)
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <pet-id>",
		Short: "Delete one of my pets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.authKey(cmd)
			if err != nil {
				return err
			}
			res, err := a.client.DeletePet(cmd.Context(), key, args[0])
			if err != nil {
				return err
			}
			return a.print(cmd, res)
		},
	}
}

// authKey obtains a fresh key for the configured credentials. Keys are never
// cached between invocations.
func (a *app) authKey(cmd *cobra.Command) (string, error) {
	if !a.cfg.HasCredentials() {
		return "", errNoCredentials
	}
	res, err := a.client.GetAPIKey(cmd.Context(), a.cfg.Email, a.cfg.Password)
	if err != nil {
		return "", err
	}
	if !res.OK() {
		_ = a.print(cmd, res)
		return "", &statusError{status: res.Status, op: "get api key"}
	}
	return res.Key(), nil
}
